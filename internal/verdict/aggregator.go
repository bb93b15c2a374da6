// Package verdict aggregates per-source analyses into one overall verdict.
package verdict

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
)

// Fringe handling modes
const (
	FringeAnnotate = "annotate"
	FringeWeighted = "weighted"
)

// RandomSource returns an int in [0, n)
type RandomSource func(n int) int

// Aggregator computes the overall verdict. It is safe for concurrent use.
type Aggregator struct {
	cfg    model.VerdictConfig
	random RandomSource
	logger *slog.Logger
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithRandom replaces the template picker
func WithRandom(r RandomSource) Option {
	return func(a *Aggregator) { a.random = r }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) { a.logger = l }
}

// New creates an Aggregator. Zero config values take the defaults.
func New(cfg model.VerdictConfig, opts ...Option) *Aggregator {
	def := model.DefaultConfig().Verdict
	if cfg.TrueWeight <= 0 {
		cfg.TrueWeight = def.TrueWeight
	}
	if cfg.MostlyTrueWeight <= 0 {
		cfg.MostlyTrueWeight = def.MostlyTrueWeight
	}
	if cfg.MixedWeight <= 0 {
		cfg.MixedWeight = def.MixedWeight
	}
	if cfg.UnverifiedWeight <= 0 {
		cfg.UnverifiedWeight = def.UnverifiedWeight
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.DominanceRatio < 1 {
		cfg.DominanceRatio = 1
	}
	if cfg.MaxConfidence <= 0 {
		cfg.MaxConfidence = def.MaxConfidence
	}
	if cfg.MinConfidence <= 0 || cfg.MinConfidence > cfg.MaxConfidence {
		cfg.MinConfidence = def.MinConfidence
	}
	if cfg.FringeMode == "" {
		cfg.FringeMode = FringeAnnotate
	}

	a := &Aggregator{cfg: cfg, random: rand.Intn}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.OrDefault(a.logger)
	return a
}

// scores are the weighted tallies behind the decision
type scores struct {
	True       float64
	False      float64
	Mixed      float64
	Unverified float64
	Weight     float64 // Total weight of counted entries
}

func (s scores) max() float64 {
	return math.Max(math.Max(s.True, s.False), math.Max(s.Mixed, s.Unverified))
}

// Aggregate never fails. An internal error produces an UNVERIFIED verdict
// at confidence 50 that names the failure.
func (a *Aggregator) Aggregate(claim string, ca model.ClaimAnalysis, analyses []model.SourceAnalysis) (v model.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("verdict aggregation failed", "panic", r)
			v = Fallback(claim, len(analyses), fmt.Errorf("%v", r))
		}
	}()

	if claim == "" {
		claim = ca.OriginalClaim
	}

	counted, annotated := a.partition(analyses)
	breakdown := tally(counted)
	balance := categoryBalance(counted)

	v = model.Verdict{
		Breakdown:         breakdown,
		Balance:           balance,
		TotalSources:      len(analyses),
		CountedSources:    len(counted),
		AverageConfidence: meanConfidence(counted),
	}

	if len(annotated) > 0 {
		v.Signals = append(v.Signals, model.Signal{
			Type:        model.SignalFringe,
			Description: fmt.Sprintf("%d fringe source(s) reported but not counted", len(annotated)),
			Value:       float64(len(annotated)),
		})
	}

	if satirical := countVerdict(analyses, model.RawSatirical); satirical > 0 {
		v.Overall = model.VerdictSatirical
		v.Signals = append(v.Signals, model.Signal{
			Type:        model.SignalSatire,
			Description: fmt.Sprintf("%d source(s) identify the claim as satire", satirical),
			Value:       float64(satirical),
		})
		conf := a.confidence(v.Overall, meanConfidence(analyses), len(analyses), balance, &v)
		v.Confidence = min(max(conf, a.cfg.SatireMinConfidence), a.cfg.MaxConfidence)
	} else {
		s := a.score(counted)
		v.Signals = append(v.Signals, scoreSignals(s)...)
		v.Overall = a.decide(s, breakdown)
		v.Confidence = a.confidence(v.Overall, v.AverageConfidence, len(counted), balance, &v)
	}

	v.Insights = insights(analyses, counted, annotated)
	v.ShareableSummary = a.summary(claim, v.Overall, len(analyses), v.Confidence)

	a.logger.Debug("verdict aggregated",
		"overall", v.Overall,
		"confidence", v.Confidence,
		"counted", v.CountedSources,
		"total", v.TotalSources,
	)
	return v
}

// partition splits out fringe entries when they only annotate
func (a *Aggregator) partition(analyses []model.SourceAnalysis) (counted, annotated []model.SourceAnalysis) {
	for _, an := range analyses {
		if an.Source.Category == model.CategoryFringe && a.cfg.FringeMode != FringeWeighted {
			annotated = append(annotated, an)
			continue
		}
		counted = append(counted, an)
	}
	return counted, annotated
}

// score computes the weighted tallies. Each entry weighs 1, or its
// credibility share when credibility weighting is on.
func (a *Aggregator) score(analyses []model.SourceAnalysis) scores {
	var s scores
	for _, an := range analyses {
		w := 1.0
		if a.cfg.CredibilityWeighting {
			w = float64(min(max(an.Source.CredibilityScore, 0), 100)) / 100
		}
		s.Weight += w
		switch an.Verdict {
		case model.RawTrue:
			s.True += a.cfg.TrueWeight * w
		case model.RawMostlyTrue:
			s.True += a.cfg.MostlyTrueWeight * w
		case model.RawFalse:
			s.False += a.cfg.TrueWeight * w
		case model.RawMostlyFalse:
			s.False += a.cfg.MostlyTrueWeight * w
		case model.RawMixed:
			s.Mixed += a.cfg.MixedWeight * w
		case model.RawUnverified, model.RawSatirical:
			s.Unverified += a.cfg.UnverifiedWeight * w
		default:
			s.Unverified += a.cfg.UnverifiedWeight * w
		}
	}
	return s
}

// decide applies the weighted rule. A decisive verdict needs the winning
// score to reach the threshold, be the maximum and dominate the opposite side.
func (a *Aggregator) decide(s scores, breakdown map[model.RawVerdict]int) model.OverallVerdict {
	if s.Weight == 0 {
		return model.VerdictUnverified
	}
	threshold := a.cfg.Threshold * s.Weight
	top := s.max()

	switch {
	case s.True >= threshold && s.True == top && s.True >= a.cfg.DominanceRatio*s.False:
		if breakdown[model.RawTrue] >= breakdown[model.RawMostlyTrue] {
			return model.VerdictVerified
		}
		return model.VerdictMostlyVerified
	case s.False >= threshold && s.False == top && s.False >= a.cfg.DominanceRatio*s.True:
		if breakdown[model.RawFalse] >= breakdown[model.RawMostlyFalse] {
			return model.VerdictFalse
		}
		return model.VerdictMostlyFalse
	case s.Mixed == top || (s.True > 0 && s.False > 0):
		return model.VerdictMixed
	case s.Unverified == top:
		return model.VerdictUnverified
	}
	return plurality(breakdown)
}

// plurality maps the most frequent raw verdict; ties go to display order
func plurality(breakdown map[model.RawVerdict]int) model.OverallVerdict {
	best, bestCount := model.RawUnverified, 0
	for _, rv := range model.RawVerdicts {
		if breakdown[rv] > bestCount {
			best, bestCount = rv, breakdown[rv]
		}
	}
	switch best {
	case model.RawTrue:
		return model.VerdictVerified
	case model.RawMostlyTrue:
		return model.VerdictMostlyVerified
	case model.RawFalse:
		return model.VerdictFalse
	case model.RawMostlyFalse:
		return model.VerdictMostlyFalse
	case model.RawMixed:
		return model.VerdictMixed
	case model.RawUnverified, model.RawSatirical:
		return model.VerdictUnverified
	default:
		return model.VerdictUnverified
	}
}

// confidence starts from the mean and applies the count, diversity and
// verdict adjustments, recording each as a signal
func (a *Aggregator) confidence(overall model.OverallVerdict, mean, sources int, balance model.CategoryBalance, v *model.Verdict) int {
	conf := mean

	countBonus := 0
	switch {
	case sources >= 8:
		countBonus = a.cfg.ManySourcesBonus
	case sources >= 5:
		countBonus = a.cfg.SomeSourcesBonus
	}
	conf += countBonus
	v.Signals = append(v.Signals, model.Signal{
		Type:        model.SignalSourceCount,
		Description: fmt.Sprintf("%d sources analyzed", sources),
		Value:       float64(countBonus),
	})

	represented := 0
	for _, n := range balance.Counts {
		if n > 0 {
			represented++
		}
	}
	diversityBonus := 0
	switch {
	case represented >= 3:
		diversityBonus = a.cfg.WideDiversityBonus
	case represented >= 2:
		diversityBonus = a.cfg.NarrowDiversityBonus
	}
	conf += diversityBonus
	v.Signals = append(v.Signals, model.Signal{
		Type:        model.SignalDiversity,
		Description: fmt.Sprintf("%d spectrum categories represented", represented),
		Value:       float64(diversityBonus),
	})

	adjust := adjustment(overall)
	conf += adjust
	v.Signals = append(v.Signals, model.Signal{
		Type:        model.SignalAdjustment,
		Description: fmt.Sprintf("%s adjustment", overall),
		Value:       float64(adjust),
	})

	return min(max(conf, a.cfg.MinConfidence), a.cfg.MaxConfidence)
}

func adjustment(overall model.OverallVerdict) int {
	switch overall {
	case model.VerdictVerified, model.VerdictFalse:
		return 5
	case model.VerdictSatirical:
		return 10
	case model.VerdictMixed:
		return -5
	case model.VerdictUnverified:
		return -10
	case model.VerdictMostlyVerified, model.VerdictMostlyFalse, model.VerdictError:
		return 0
	default:
		return 0
	}
}

func scoreSignals(s scores) []model.Signal {
	return []model.Signal{
		{Type: model.SignalTrueScore, Description: "Weighted true-leaning score", Value: s.True},
		{Type: model.SignalFalseScore, Description: "Weighted false-leaning score", Value: s.False},
		{Type: model.SignalMixedScore, Description: "Weighted mixed score", Value: s.Mixed},
		{Type: model.SignalUnverifiedScore, Description: "Weighted unverified score", Value: s.Unverified},
	}
}

// tally counts raw verdicts with every verdict present as a key
func tally(analyses []model.SourceAnalysis) map[model.RawVerdict]int {
	counts := make(map[model.RawVerdict]int, len(model.RawVerdicts))
	for _, rv := range model.RawVerdicts {
		counts[rv] = 0
	}
	for _, an := range analyses {
		if _, ok := counts[an.Verdict]; ok {
			counts[an.Verdict]++
		} else {
			counts[model.RawUnverified]++
		}
	}
	return counts
}

func countVerdict(analyses []model.SourceAnalysis, rv model.RawVerdict) int {
	n := 0
	for _, an := range analyses {
		if an.Verdict == rv {
			n++
		}
	}
	return n
}

// meanConfidence is the rounded mean, or 50 with nothing to average
func meanConfidence(analyses []model.SourceAnalysis) int {
	if len(analyses) == 0 {
		return 50
	}
	total := 0
	for _, an := range analyses {
		total += an.Confidence
	}
	return int(math.Round(float64(total) / float64(len(analyses))))
}

// categoryBalance counts spectrum categories. Percentages are of all counted entries.
func categoryBalance(analyses []model.SourceAnalysis) model.CategoryBalance {
	b := model.CategoryBalance{
		Counts:      make(map[model.Category]int),
		Percentages: make(map[model.Category]int),
	}
	for _, c := range model.BalancedCategories {
		if c.IsSpectrum() {
			b.Counts[c] = 0
		}
	}
	for _, an := range analyses {
		if an.Source.Category.IsSpectrum() {
			b.Counts[an.Source.Category]++
		}
	}
	for c, n := range b.Counts {
		pct := 0
		if len(analyses) > 0 {
			pct = int(math.Round(float64(n) / float64(len(analyses)) * 100))
		}
		b.Percentages[c] = pct
	}
	return b
}

// Fallback is the fixed verdict used when aggregation cannot complete
func Fallback(claim string, sources int, err error) model.Verdict {
	short := []rune(claim)
	if len(short) > 60 {
		short = short[:60]
	}
	v := model.Verdict{
		Overall:    model.VerdictUnverified,
		Confidence: 50,
		ShareableSummary: fmt.Sprintf(`"%s..." - UNVERIFIED across %d sources. Sometimes the internet doesn't cooperate. (50%% confidence) #FactCheck`,
			string(short), sources),
		Breakdown:         map[model.RawVerdict]int{model.RawUnverified: sources},
		Balance:           model.CategoryBalance{Counts: map[model.Category]int{}, Percentages: map[model.Category]int{}},
		TotalSources:      sources,
		AverageConfidence: 50,
	}
	if err != nil {
		v.Insights = []string{"Verdict could not be computed: " + err.Error()}
	}
	return v
}
