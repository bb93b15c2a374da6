package analyze

import (
	"fmt"
	"hash/fnv"

	"github.com/ppiankov/crosscheck/internal/model"
)

var summaryTemplates = map[model.RawVerdict][]string{
	model.RawTrue: {
		"%s backs this up with solid reporting and evidence.",
		"According to %s, this checks out with strong documentation.",
		"%s confirms this claim with credible sources.",
	},
	model.RawMostlyTrue: {
		"%s largely supports this, with some important caveats.",
		"%s says this is mostly accurate with minor exceptions.",
		"According to %s, this is generally true but nuanced.",
	},
	model.RawMixed: {
		"%s presents a complex view with evidence on multiple sides.",
		"%s shows this is more complicated than it initially appears.",
		"According to %s, the truth involves multiple perspectives.",
	},
	model.RawMostlyFalse: {
		"%s finds significant problems with this claim.",
		"According to %s, this is largely inaccurate or misleading.",
		"%s reports serious issues with the evidence behind this.",
	},
	model.RawFalse: {
		"%s thoroughly debunks this claim with counter-evidence.",
		"According to %s, this is demonstrably false.",
		"%s fact-checkers say this doesn't hold up to scrutiny.",
	},
	model.RawUnverified: {
		"%s doesn't provide clear evidence either way on this.",
		"According to %s, this remains unclear or unsubstantiated.",
		"%s coverage doesn't settle this question definitively.",
	},
	model.RawSatirical: {
		"%s treats this as satire rather than news.",
		"According to %s, this comes from a parody or satirical piece.",
	},
}

// summarize picks a template by hashing the source name, so the same source
// always reads the same way for a given verdict.
func summarize(source string, verdict model.RawVerdict, relevance float64, confidence int) string {
	options, ok := summaryTemplates[verdict]
	if !ok {
		options = summaryTemplates[model.RawUnverified]
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(source))
	summary := fmt.Sprintf(options[h.Sum32()%uint32(len(options))], source)

	if relevance < relevanceDecisive {
		summary += " (Limited relevance to the specific claim)"
	}
	if confidence < 40 {
		summary += " Analysis confidence is low due to limited evidence."
	}
	return summary
}
