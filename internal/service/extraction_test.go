package service_test

import (
	"testing"
	"time"

	"github.com/Mixilino/coffee-management/internal/model"
	"github.com/Mixilino/coffee-management/internal/service"
)

func TestLogShotReconcilesLedger(t *testing.T) {
	t.Parallel()
	ledger := service.NewLedger(nil, nil)
	log := service.NewExtractionLog(nil, ledger)
	c := ledger.AddOrRestock("Yirgacheffe", "Blue Bottle", 250)

	id := log.LogShot(service.LogShotInput{
		CoffeeID:       c.ID,
		CoffeeName:     c.Name,
		CoffeeSeller:   c.Seller,
		GramsIn:        18,
		GrinderSetting: "15",
		TimeSeconds:    27,
		YieldGrams:     36,
		Date:           time.Now(),
	})
	if id == "" {
		t.Fatalf("expected a shot id")
	}

	got, _ := ledger.ByID(c.ID)
	if !approx(got.UsedGrams, 18) || !approx(got.Remaining, 232) {
		t.Fatalf("expected 18g used / 232g remaining, got %+v", got)
	}
	checkCoffeeInvariants(t, ledger)

	shot, ok := log.ByID(id)
	if !ok {
		t.Fatalf("logged shot not found")
	}
	if !approx(shot.Ratio, 2.0) {
		t.Fatalf("expected ratio 2.0, got %.2f", shot.Ratio)
	}

	log.Delete(id)
	got, _ = ledger.ByID(c.ID)
	if !approx(got.UsedGrams, 0) || !approx(got.Remaining, 250) {
		t.Fatalf("delete must restore remaining to 250, got %+v", got)
	}
	checkCoffeeInvariants(t, ledger)
}

func TestLogShotZeroDoseRatio(t *testing.T) {
	t.Parallel()
	ledger := service.NewLedger(nil, nil)
	log := service.NewExtractionLog(nil, ledger)

	id := log.LogShot(service.LogShotInput{CoffeeID: "c1", GramsIn: 0, YieldGrams: 36, TimeSeconds: 27, Date: time.Now()})
	shot, _ := log.ByID(id)
	if shot.Ratio != 0 {
		t.Fatalf("zero dose must yield ratio 0, got %.2f", shot.Ratio)
	}
}

func TestAttachRatingDerivesRecommendation(t *testing.T) {
	t.Parallel()
	ledger := service.NewLedger(nil, nil)
	log := service.NewExtractionLog(nil, ledger)
	ledger.AddOrRestock("Kenya AA", "", 250)
	c := ledger.All()[0]

	id := log.LogShot(service.LogShotInput{
		CoffeeID: c.ID, GramsIn: 18, YieldGrams: 36, TimeSeconds: 27,
		GrinderSetting: "15", Date: time.Now(),
	})

	log.AttachRatingAndNotes(id, 4, "balanced, sweet")
	shot, _ := log.ByID(id)
	if shot.Rating == nil || *shot.Rating != 4 || shot.Notes != "balanced, sweet" {
		t.Fatalf("rating/notes not attached: %+v", shot)
	}
	if shot.Recommendation == nil || shot.Recommendation.Severity != model.SeverityNone {
		t.Fatalf("expected a good-shot recommendation, got %+v", shot.Recommendation)
	}

	// Re-rating overwrites the previous recommendation.
	log.AttachRatingAndNotes(id, 2, "bitter and harsh")
	shot, _ = log.ByID(id)
	if *shot.Rating != 2 {
		t.Fatalf("re-rating must overwrite, got %d", *shot.Rating)
	}
	if shot.Recommendation.AdjustGrind != model.GrindCoarser {
		t.Fatalf("expected coarser after bitter notes, got %+v", shot.Recommendation)
	}
}

func TestAttachRatingUnknownIDIsNoop(t *testing.T) {
	t.Parallel()
	log := service.NewExtractionLog(nil, service.NewLedger(nil, nil))
	log.AttachRatingAndNotes("missing", 5, "great")
	if len(log.All()) != 0 {
		t.Fatalf("no-op expected for unknown id")
	}
}

func TestExtractionImportMergeSkipsReconciliation(t *testing.T) {
	t.Parallel()
	ledger := service.NewLedger(nil, nil)
	log := service.NewExtractionLog(nil, ledger)
	c := ledger.AddOrRestock("Kenya AA", "", 250)

	existing := shotAt(c.ID, 1, 18, 36, 27, "15", nil)
	log.ImportMerge([]model.Extraction{existing})

	inserted := log.ImportMerge([]model.Extraction{
		existing, // duplicate id, skipped
		shotAt(c.ID, 0, 17, 34, 26, "15", intPtr(4)),
	})
	if inserted != 1 {
		t.Fatalf("expected 1 inserted, got %d", inserted)
	}
	if len(log.All()) != 2 {
		t.Fatalf("expected 2 shots, got %d", len(log.All()))
	}

	// Bulk import leaves the ledger untouched until the caller reconciles.
	got, _ := ledger.ByID(c.ID)
	if !approx(got.UsedGrams, 0) {
		t.Fatalf("import must not reconcile, got used %.2f", got.UsedGrams)
	}
	ledger.RecalculateUsed(c.ID, log.All())
	got, _ = ledger.ByID(c.ID)
	if !approx(got.UsedGrams, 35) {
		t.Fatalf("expected 35g used after reconcile, got %.2f", got.UsedGrams)
	}
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	t.Parallel()
	ledger := service.NewLedger(nil, nil)
	log := service.NewExtractionLog(nil, ledger)

	first := log.LogShot(service.LogShotInput{CoffeeID: "c1", GramsIn: 18, YieldGrams: 36, TimeSeconds: 27, Date: time.Now().Add(-2 * time.Hour)})
	second := log.LogShot(service.LogShotInput{CoffeeID: "c1", GramsIn: 18, YieldGrams: 36, TimeSeconds: 27, Date: time.Now().Add(-time.Hour)})
	third := log.LogShot(service.LogShotInput{CoffeeID: "c1", GramsIn: 18, YieldGrams: 36, TimeSeconds: 27, Date: time.Now()})

	recent := log.Recent(2)
	if len(recent) != 2 || recent[0].ID != third || recent[1].ID != second {
		t.Fatalf("expected newest two shots, got %+v", recent)
	}
	if all := log.Recent(0); len(all) != 3 || all[0].ID != third || all[2].ID != first {
		t.Fatalf("n<=0 must return everything newest first, got %+v", all)
	}
}

func TestByCoffeeFilters(t *testing.T) {
	t.Parallel()
	ledger := service.NewLedger(nil, nil)
	log := service.NewExtractionLog(nil, ledger)
	log.LogShot(service.LogShotInput{CoffeeID: "a", GramsIn: 18, YieldGrams: 36, TimeSeconds: 27, Date: time.Now()})
	log.LogShot(service.LogShotInput{CoffeeID: "b", GramsIn: 18, YieldGrams: 36, TimeSeconds: 27, Date: time.Now()})
	log.LogShot(service.LogShotInput{CoffeeID: "a", GramsIn: 17, YieldGrams: 34, TimeSeconds: 26, Date: time.Now()})

	if got := log.ByCoffee("a"); len(got) != 2 {
		t.Fatalf("expected 2 shots for coffee a, got %d", len(got))
	}
	if got := log.ByCoffee("missing"); len(got) != 0 {
		t.Fatalf("expected no shots, got %d", len(got))
	}
}
