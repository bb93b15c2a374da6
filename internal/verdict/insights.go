package verdict

import (
	"fmt"

	"github.com/ppiankov/crosscheck/internal/model"
)

func insights(all, counted, annotated []model.SourceAnalysis) []string {
	var out []string

	if s := factCheckConsensus(counted); s != "" {
		out = append(out, s)
	}
	if s := spectrumAgreement(counted); s != "" {
		out = append(out, s)
	}

	unconfirmed := 0
	for _, an := range all {
		if an.Method == model.MethodUnconfirmed {
			unconfirmed++
		}
	}
	if unconfirmed > 0 {
		out = append(out, fmt.Sprintf("%d source(s) may have coverage that could not be retrieved", unconfirmed))
	}

	if len(annotated) > 0 {
		out = append(out, fmt.Sprintf("%d fringe source(s) shown for context but not counted in the verdict", len(annotated)))
	}
	return out
}

// factCheckConsensus summarizes professional fact-checker entries
func factCheckConsensus(analyses []model.SourceAnalysis) string {
	total, trueLeaning, falseLeaning := 0, 0, 0
	for _, an := range analyses {
		if an.Source.Category != model.CategoryFactCheck {
			continue
		}
		total++
		switch an.Verdict.Leaning() {
		case 1:
			trueLeaning++
		case -1:
			falseLeaning++
		}
	}
	switch {
	case total == 0:
		return ""
	case falseLeaning == total:
		return fmt.Sprintf("Professional fact-checker consensus: all %d rate this claim false or mostly false", total)
	case trueLeaning == total:
		return fmt.Sprintf("Professional fact-checker consensus: all %d rate this claim true or mostly true", total)
	default:
		return fmt.Sprintf("Professional fact-checkers are split: %d false-leaning, %d true-leaning of %d", falseLeaning, trueLeaning, total)
	}
}

// spectrumAgreement compares the net leaning of left and right sources
func spectrumAgreement(analyses []model.SourceAnalysis) string {
	left, right := 0, 0
	leftSeen, rightSeen := false, false
	for _, an := range analyses {
		switch an.Source.Category {
		case model.CategoryLeft:
			left += an.Verdict.Leaning()
			leftSeen = true
		case model.CategoryRight:
			right += an.Verdict.Leaning()
			rightSeen = true
		case model.CategoryCenter, model.CategoryInternational, model.CategoryFactCheck, model.CategoryFringe:
		}
	}
	if !leftSeen || !rightSeen {
		return ""
	}
	switch {
	case left > 0 && right > 0:
		return "Left- and right-leaning sources agree the claim holds up"
	case left < 0 && right < 0:
		return "Left- and right-leaning sources agree the claim does not hold up"
	case left*right < 0:
		return "Left- and right-leaning sources disagree on this claim"
	default:
		return ""
	}
}
