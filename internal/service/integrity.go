package service

import (
	"fmt"
	"math"
)

const driftTolerance = 1e-6

type IntegrityReport struct {
	RemainingMismatches int      `json:"remainingMismatches"`
	ActiveMismatches    int      `json:"activeMismatches"`
	UsedGramsDrift      int      `json:"usedGramsDrift"`
	OrphanShots         int      `json:"orphanShots"`
	FixedCoffees        int      `json:"fixedCoffees"`
	Details             []string `json:"details,omitempty"`
}

// CheckIntegrity verifies the ledger invariants against the extraction log:
// remaining == boughtGrams - usedGrams + manualOffset, isActive ==
// (!isArchived && remaining > 0), and usedGrams equals the sum of the
// coffee's extractions. Orphan shots (deleted coffees) are counted but not
// treated as corruption since permanent deletion keeps history. With fix
// set, every coffee is re-reconciled through the same primitive the
// extraction log uses.
func CheckIntegrity(ledger *Ledger, log *ExtractionLog, fix bool) IntegrityReport {
	report := IntegrityReport{}
	extractions := log.All()

	usedByCoffee := make(map[string]float64)
	known := make(map[string]bool)
	for _, c := range ledger.All() {
		known[c.ID] = true
	}
	for _, e := range extractions {
		usedByCoffee[e.CoffeeID] += e.GramsIn
		if !known[e.CoffeeID] {
			report.OrphanShots++
		}
	}

	for _, c := range ledger.All() {
		expected := c.BoughtGrams - c.UsedGrams + c.ManualOffset
		if math.Abs(c.Remaining-expected) > driftTolerance {
			report.RemainingMismatches++
			report.Details = append(report.Details, fmt.Sprintf("%s: remaining %.2f, formula %.2f", c.Name, c.Remaining, expected))
		}
		if c.IsActive != (!c.IsArchived && c.Remaining > 0) {
			report.ActiveMismatches++
			report.Details = append(report.Details, fmt.Sprintf("%s: isActive flag out of sync", c.Name))
		}
		if math.Abs(c.UsedGrams-usedByCoffee[c.ID]) > driftTolerance {
			report.UsedGramsDrift++
			report.Details = append(report.Details, fmt.Sprintf("%s: usedGrams %.2f, shots total %.2f", c.Name, c.UsedGrams, usedByCoffee[c.ID]))
		}
	}

	if fix {
		for _, c := range ledger.All() {
			ledger.RecalculateUsed(c.ID, extractions)
			report.FixedCoffees++
		}
	}
	return report
}

func (r IntegrityReport) Clean() bool {
	return r.RemainingMismatches == 0 && r.ActiveMismatches == 0 && r.UsedGramsDrift == 0
}
