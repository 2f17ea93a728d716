package service_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/Mixilino/coffee-management/internal/model"
	"github.com/Mixilino/coffee-management/internal/service"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func intPtr(n int) *int {
	return &n
}

// checkCoffeeInvariants asserts the two ledger invariants that must hold
// for every coffee at all times.
func checkCoffeeInvariants(t *testing.T, ledger *service.Ledger) {
	t.Helper()
	for _, c := range ledger.All() {
		expected := c.BoughtGrams - c.UsedGrams + c.ManualOffset
		if !approx(c.Remaining, expected) {
			t.Fatalf("%s: remaining %.4f violates formula %.4f", c.Name, c.Remaining, expected)
		}
		if c.IsActive != (!c.IsArchived && c.Remaining > 0) {
			t.Fatalf("%s: isActive=%v inconsistent with isArchived=%v remaining=%.2f", c.Name, c.IsActive, c.IsArchived, c.Remaining)
		}
	}
}

var shotSeq int

func shotAt(coffeeID string, daysAgo int, gramsIn, yieldGrams float64, timeSeconds int, grind string, rating *int) model.Extraction {
	ratio := 0.0
	if gramsIn > 0 {
		ratio = math.Round(yieldGrams/gramsIn*100) / 100
	}
	shotSeq++
	return model.Extraction{
		ID:             fmt.Sprintf("%s-shot-%d", coffeeID, shotSeq),
		CoffeeID:       coffeeID,
		CoffeeName:     "Test Coffee",
		CoffeeSeller:   "Unknown",
		GramsIn:        gramsIn,
		GrinderSetting: grind,
		TimeSeconds:    timeSeconds,
		YieldGrams:     yieldGrams,
		Ratio:          ratio,
		Rating:         rating,
		Date:           time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}
