package service

import (
	"sort"

	"github.com/Mixilino/coffee-management/internal/model"
)

type CoffeeStats struct {
	CoffeeID   string  `json:"coffeeId"`
	Name       string  `json:"name"`
	Seller     string  `json:"seller"`
	TotalShots int     `json:"totalShots"`
	GramsUsed  float64 `json:"gramsUsed"`
	AvgRating  float64 `json:"avgRating"`
	AvgTime    float64 `json:"avgTime"`
	AvgRatio   float64 `json:"avgRatio"`
	BestRating int     `json:"bestRating"`
}

type StatsReport struct {
	TotalShots    int           `json:"totalShots"`
	TotalCoffees  int           `json:"totalCoffees"`
	ActiveCoffees int           `json:"activeCoffees"`
	TotalUsed     float64       `json:"totalUsed"`
	AvgRating     float64       `json:"avgRating"`
	AvgRatio      float64       `json:"avgRatio"`
	ByCoffee      []CoffeeStats `json:"byCoffee"`
}

// BuildStats aggregates overall and per-coffee shot statistics.
func BuildStats(coffees []model.Coffee, extractions []model.Extraction) StatsReport {
	report := StatsReport{TotalShots: len(extractions)}

	var ratingSum float64
	ratedCount := 0
	for _, e := range extractions {
		report.TotalUsed += e.GramsIn
		report.AvgRatio += e.Ratio
		if e.Rating != nil {
			ratingSum += float64(*e.Rating)
			ratedCount++
		}
	}
	if report.TotalShots > 0 {
		report.AvgRatio /= float64(report.TotalShots)
	}
	if ratedCount > 0 {
		report.AvgRating = ratingSum / float64(ratedCount)
	}

	for _, c := range coffees {
		if c.IsArchived {
			continue
		}
		report.TotalCoffees++
		if c.IsActive {
			report.ActiveCoffees++
		}

		stats := CoffeeStats{CoffeeID: c.ID, Name: c.Name, Seller: c.Seller}
		var timeSum, ratioSum, coffeeRatingSum float64
		coffeeRated := 0
		for _, e := range extractions {
			if e.CoffeeID != c.ID {
				continue
			}
			stats.TotalShots++
			stats.GramsUsed += e.GramsIn
			timeSum += float64(e.TimeSeconds)
			ratioSum += e.Ratio
			if e.Rating != nil {
				coffeeRatingSum += float64(*e.Rating)
				coffeeRated++
				if *e.Rating > stats.BestRating {
					stats.BestRating = *e.Rating
				}
			}
		}
		if stats.TotalShots == 0 {
			continue
		}
		stats.AvgTime = timeSum / float64(stats.TotalShots)
		stats.AvgRatio = ratioSum / float64(stats.TotalShots)
		if coffeeRated > 0 {
			stats.AvgRating = coffeeRatingSum / float64(coffeeRated)
		}
		report.ByCoffee = append(report.ByCoffee, stats)
	}

	sort.SliceStable(report.ByCoffee, func(i, j int) bool {
		return report.ByCoffee[i].TotalShots > report.ByCoffee[j].TotalShots
	})
	return report
}
