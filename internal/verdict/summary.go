package verdict

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/crosscheck/internal/model"
)

var summaryTemplates = map[model.OverallVerdict][]string{
	model.VerdictVerified: {
		"Well, well, well... looks like someone actually told the truth for once. {claim} - VERIFIED by {sources} sources. Mark your calendars, folks.",
		"Plot twist: this claim is actually accurate. {claim} - VERIFIED across {sources} sources. Reality has entered the chat.",
		"Breaking: Facts still exist! {claim} - VERIFIED by {sources} sources. Sometimes the truth cooperates.",
	},
	model.VerdictMostlyVerified: {
		"{claim} - MOSTLY VERIFIED by {sources} sources. Close enough for government work, as they say.",
		"This claim is largely accurate, with some fine print. {claim} - MOSTLY VERIFIED across {sources} sources.",
		"{claim} - MOSTLY VERIFIED by {sources} sources. The devil's in the details, but the angels are in the facts.",
	},
	model.VerdictMixed: {
		"{claim} - MIXED verdict from {sources} sources. Reality refuses to be simple, as usual.",
		"It's complicated (shocking, I know). {claim} - MIXED evidence across {sources} sources.",
		"{claim} - MIXED results from {sources} sources. Nuance: it's what's for dinner.",
	},
	model.VerdictMostlyFalse: {
		"{claim} - MOSTLY FALSE according to {sources} sources. Time to update those talking points.",
		"This claim has more holes than Swiss cheese. {claim} - MOSTLY FALSE per {sources} sources.",
		"{claim} - MOSTLY FALSE say {sources} sources. Facts don't care about your feelings.",
	},
	model.VerdictFalse: {
		"{claim} - FALSE according to {sources} sources. Reality called, it wants its facts back.",
		"Nope, nope, and more nope. {claim} - FALSE per {sources} sources. The truth has spoken.",
		"{claim} - FALSE say {sources} sources. Sometimes the internet lies. Shocking, I know.",
	},
	model.VerdictSatirical: {
		"{claim} - SATIRICAL content detected by {sources} sources. It's a joke, folks. Literally.",
		"This appears to be satire masquerading as news. {claim} - SATIRICAL per {sources} sources.",
		"{claim} - SATIRICAL according to {sources} sources. The Onion strikes again.",
	},
	model.VerdictUnverified: {
		"{claim} - UNVERIFIED across {sources} sources. Some mysteries remain unsolved.",
		"The evidence is playing hard to get. {claim} - UNVERIFIED per {sources} sources.",
		"{claim} - UNVERIFIED say {sources} sources. Even experts need more coffee sometimes.",
	},
}

// ShortClaim quotes the claim, cut to 60 runes
func ShortClaim(claim string) string {
	r := []rune(strings.TrimSpace(claim))
	if len(r) > 60 {
		return `"` + string(r[:57]) + `..."`
	}
	return `"` + string(r) + `"`
}

func (a *Aggregator) summary(claim string, overall model.OverallVerdict, sources, confidence int) string {
	templates, ok := summaryTemplates[overall]
	if !ok {
		templates = summaryTemplates[model.VerdictUnverified]
	}
	i := a.random(len(templates))
	if i < 0 || i >= len(templates) {
		i = 0
	}
	text := strings.NewReplacer(
		"{claim}", ShortClaim(claim),
		"{sources}", strconv.Itoa(sources),
	).Replace(templates[i])
	return fmt.Sprintf("%s (%d%% confidence) #FactCheck", text, confidence)
}
