package service

import (
	"fmt"
	"strings"

	"github.com/Mixilino/coffee-management/internal/model"
)

// Extraction classification thresholds.
const (
	underTimeSeconds = 20
	overTimeSeconds  = 30
	lowRatio         = 1.5
	highRatio        = 2.5
)

var overCues = []string{"bitter", "harsh"}
var underCues = []string{"sour", "acidic", "weak"}

func notesMatch(notes string, cues []string) bool {
	notes = strings.ToLower(notes)
	for _, cue := range cues {
		if strings.Contains(notes, cue) {
			return true
		}
	}
	return false
}

// Recommend classifies one completed extraction from its taste notes,
// shot time and ratio. Pure function: same input, same output.
func Recommend(e model.Extraction) model.Recommendation {
	ratio := e.Ratio
	if ratio == 0 && e.GramsIn > 0 {
		ratio = e.YieldGrams / e.GramsIn
	}

	isBitter := notesMatch(e.Notes, overCues)
	isSlow := e.TimeSeconds > overTimeSeconds
	isHighRatio := ratio > highRatio

	isSour := notesMatch(e.Notes, underCues)
	isFast := e.TimeSeconds < underTimeSeconds
	isLowRatio := ratio < lowRatio

	overScore := countTrue(isBitter, isSlow, isHighRatio)
	underScore := countTrue(isSour, isFast, isLowRatio)

	// Conflicting signals point at puck prep, not grind direction.
	if overScore > 0 && underScore > 0 {
		return model.Recommendation{
			AdjustGrind: model.GrindSame,
			AdjustTime:  model.TimeSame,
			AdjustDose:  model.DoseSame,
			Reason:      fmt.Sprintf("Mixed over- and under-extraction signals (ratio %.2f:1, %ds). Likely channeling or uneven puck prep; check distribution and tamp.", ratio, e.TimeSeconds),
			Severity:    model.SeverityMinor,
		}
	}

	if overScore > 0 {
		dose := model.DoseSame
		if isHighRatio {
			dose = model.DoseLess
		}
		cues := ""
		if isBitter {
			cues += "bitter taste, "
		}
		if isSlow {
			cues += fmt.Sprintf("%ds too long, ", e.TimeSeconds)
		}
		severity := model.SeverityMinor
		if overScore >= 2 {
			severity = model.SeverityMajor
		}
		return model.Recommendation{
			AdjustGrind: model.GrindCoarser,
			AdjustTime:  model.TimeShorter,
			AdjustDose:  dose,
			Reason:      fmt.Sprintf("Over-extracted (%sratio %.2f:1). Go coarser and aim for 22-28s.", cues, ratio),
			Severity:    severity,
		}
	}

	if underScore > 0 {
		dose := model.DoseSame
		if isLowRatio {
			dose = model.DoseLess
		}
		cues := ""
		if isSour {
			cues += "sour taste, "
		}
		if isFast {
			cues += fmt.Sprintf("%ds too fast, ", e.TimeSeconds)
		}
		severity := model.SeverityMinor
		if underScore >= 2 {
			severity = model.SeverityMajor
		}
		return model.Recommendation{
			AdjustGrind: model.GrindFiner,
			AdjustTime:  model.TimeLonger,
			AdjustDose:  dose,
			Reason:      fmt.Sprintf("Under-extracted (%sratio %.2f:1). Go finer and aim for 22-28s.", cues, ratio),
			Severity:    severity,
		}
	}

	return model.Recommendation{
		AdjustGrind: model.GrindSame,
		AdjustTime:  model.TimeSame,
		AdjustDose:  model.DoseSame,
		Reason:      fmt.Sprintf("Good extraction! Ratio %.2f:1, time %ds. Keep current settings.", ratio, e.TimeSeconds),
		Severity:    model.SeverityNone,
	}
}

// QuickSummary renders a recommendation as one directional line.
func QuickSummary(rec model.Recommendation) string {
	parts := make([]string, 0, 3)
	if rec.AdjustGrind != model.GrindSame {
		parts = append(parts, fmt.Sprintf("Go %s", rec.AdjustGrind))
	}
	if rec.AdjustTime != model.TimeSame {
		parts = append(parts, fmt.Sprintf("%s time", rec.AdjustTime))
	}
	if rec.AdjustDose != model.DoseSame {
		parts = append(parts, fmt.Sprintf("%s dose", rec.AdjustDose))
	}
	if len(parts) == 0 {
		return "-> Keep current settings"
	}
	return "-> " + strings.Join(parts, ", ")
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
