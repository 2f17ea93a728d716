package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Mixilino/coffee-management/internal/model"
)

// Suggestion window and guard-rail bounds. The inner step bounds keep a
// suggestion within a small move from the last shot; the absolute bounds
// keep it inside known-safe espresso territory. Grind has no absolute range
// because grinder scales are device-specific.
const (
	suggestWindow = 6

	doseStep = 0.6
	doseMin  = 14.0
	doseMax  = 24.0

	ratioStep = 0.2
	ratioMin  = 1.7
	ratioMax  = 2.3

	timeMin = 22.0
	timeMax = 34.0

	grindStep = 1.0
)

func recencyWeight(idx int) float64 {
	return 1 / (1 + float64(idx)*0.45)
}

// ratingWeight trusts rated-and-good shots more and rated-and-poor shots
// slightly less than unrated ones.
func ratingWeight(rating *int) float64 {
	if rating == nil {
		return 1
	}
	return 0.85 + float64(*rating)/5*0.5
}

func extractionRatio(e model.Extraction) float64 {
	if e.Ratio != 0 {
		return e.Ratio
	}
	if e.GramsIn > 0 {
		return e.YieldGrams / e.GramsIn
	}
	return 0
}

// SuggestSettings computes guarded starting parameters for the next shot of
// a coffee from its recent history. Returns nil when the coffee has no
// extractions; the caller falls back to a fixed baseline.
func SuggestSettings(coffeeID string, extractions []model.Extraction) *model.SuggestedSettings {
	history := make([]model.Extraction, 0)
	for _, e := range extractions {
		if e.CoffeeID == coffeeID {
			history = append(history, e)
		}
	}
	if len(history) == 0 {
		return nil
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})

	window := history
	if len(window) > suggestWindow {
		window = window[:suggestWindow]
	}
	last := window[0]

	var weightSum, doseSum, ratioSum, timeSum float64
	var grindSum, grindWeightSum float64
	ratedCount := 0
	for idx, e := range window {
		w := recencyWeight(idx) * ratingWeight(e.Rating)
		weightSum += w
		doseSum += w * e.GramsIn
		ratioSum += w * extractionRatio(e)
		timeSum += w * float64(e.TimeSeconds)
		if g, err := strconv.ParseFloat(strings.TrimSpace(e.GrinderSetting), 64); err == nil {
			grindSum += w * g
			grindWeightSum += w
		}
		if e.Rating != nil {
			ratedCount++
		}
	}

	avgDose := doseSum / weightSum
	avgRatio := ratioSum / weightSum
	avgTime := timeSum / weightSum

	lastRatio := extractionRatio(last)
	dose := clamp(clamp(avgDose, last.GramsIn-doseStep, last.GramsIn+doseStep), doseMin, doseMax)
	ratio := clamp(clamp(avgRatio, lastRatio-ratioStep, lastRatio+ratioStep), ratioMin, ratioMax)
	timeSeconds := clamp(avgTime, timeMin, timeMax)

	grind := last.GrinderSetting
	if lastGrind, err := strconv.ParseFloat(strings.TrimSpace(last.GrinderSetting), 64); err == nil {
		g := lastGrind
		if grindWeightSum > 0 {
			g = grindSum / grindWeightSum
		}
		g = clamp(g, lastGrind-grindStep, lastGrind+grindStep)
		grind = strconv.FormatFloat(round1(g), 'f', -1, 64)
	}

	confidence := model.ConfidenceLow
	switch {
	case len(window) >= 4 && ratedCount >= 2:
		confidence = model.ConfidenceHigh
	case len(window) >= 2:
		confidence = model.ConfidenceMedium
	}

	basedOn := "last shot"
	if len(window) > 1 {
		basedOn = fmt.Sprintf("last %d shots", len(window))
	}
	hint := ""
	if ratedCount == 0 {
		hint = "Rate your shots to sharpen future suggestions."
	}

	return &model.SuggestedSettings{
		GrinderSetting: grind,
		GramsIn:        round1(dose),
		TimeSeconds:    int(math.Round(timeSeconds)),
		Ratio:          round2(ratio),
		BasedOn:        basedOn,
		Hint:           hint,
		Confidence:     confidence,
	}
}
