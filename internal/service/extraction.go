package service

import (
	"time"

	"github.com/Mixilino/coffee-management/internal/model"
)

// WeightRecalculator is the only view of the ledger the extraction log
// needs. The coupling is one-directional: the log depends on the ledger,
// the ledger knows nothing about the log.
type WeightRecalculator interface {
	RecalculateUsed(coffeeID string, extractions []model.Extraction)
}

// ExtractionLog owns the recorded shots. Inserting or deleting a shot and
// recomputing the owning coffee's consumed weight form one logical
// transaction; no caller may observe the collection in between.
type ExtractionLog struct {
	extractions []model.Extraction
	ledger      WeightRecalculator
}

func NewExtractionLog(extractions []model.Extraction, ledger WeightRecalculator) *ExtractionLog {
	return &ExtractionLog{extractions: extractions, ledger: ledger}
}

type LogShotInput struct {
	CoffeeID       string
	CoffeeName     string
	CoffeeSeller   string
	GramsIn        float64
	GrinderSetting string
	TimeSeconds    int
	YieldGrams     float64
	Date           time.Time
}

// LogShot appends a new extraction and reconciles the owning coffee's used
// weight. The ratio is fixed here from gramsIn/yieldGrams and is the value
// of record from then on. Returns the new id.
func (g *ExtractionLog) LogShot(in LogShotInput) string {
	ratio := 0.0
	if in.GramsIn > 0 {
		ratio = round2(in.YieldGrams / in.GramsIn)
	}

	e := model.Extraction{
		ID:             newID(),
		CoffeeID:       in.CoffeeID,
		CoffeeName:     in.CoffeeName,
		CoffeeSeller:   in.CoffeeSeller,
		GramsIn:        in.GramsIn,
		GrinderSetting: in.GrinderSetting,
		TimeSeconds:    in.TimeSeconds,
		YieldGrams:     in.YieldGrams,
		Ratio:          ratio,
		Date:           in.Date,
	}
	g.extractions = append(g.extractions, e)
	g.ledger.RecalculateUsed(in.CoffeeID, g.extractions)
	return e.ID
}

// AttachRatingAndNotes sets the rating and notes on a shot and derives its
// recommendation. Calling it again overwrites the previous recommendation
// deterministically. No-op if the id is unknown.
func (g *ExtractionLog) AttachRatingAndNotes(id string, rating int, notes string) {
	for i := range g.extractions {
		if g.extractions[i].ID != id {
			continue
		}
		g.extractions[i].Rating = &rating
		g.extractions[i].Notes = notes
		rec := Recommend(g.extractions[i])
		g.extractions[i].Recommendation = &rec
		return
	}
}

// Delete removes a shot and reconciles the owning coffee. No-op if the id
// is unknown.
func (g *ExtractionLog) Delete(id string) {
	for i := range g.extractions {
		if g.extractions[i].ID != id {
			continue
		}
		coffeeID := g.extractions[i].CoffeeID
		g.extractions = append(g.extractions[:i], g.extractions[i+1:]...)
		g.ledger.RecalculateUsed(coffeeID, g.extractions)
		return
	}
}

// ImportMerge inserts incoming extractions whose ids are not already
// present. It does NOT reconcile the ledger; bulk importers must call
// RecalculateUsed for every affected coffee afterwards. Returns the number
// inserted.
func (g *ExtractionLog) ImportMerge(extractions []model.Extraction) int {
	inserted := 0
	for _, in := range extractions {
		if _, ok := g.ByID(in.ID); ok {
			continue
		}
		g.extractions = append(g.extractions, in)
		inserted++
	}
	return inserted
}

func (g *ExtractionLog) All() []model.Extraction {
	return append([]model.Extraction(nil), g.extractions...)
}

func (g *ExtractionLog) ByCoffee(coffeeID string) []model.Extraction {
	out := make([]model.Extraction, 0)
	for _, e := range g.extractions {
		if e.CoffeeID == coffeeID {
			out = append(out, e)
		}
	}
	return out
}

// Recent returns up to n extractions, newest first.
func (g *ExtractionLog) Recent(n int) []model.Extraction {
	if n <= 0 || n > len(g.extractions) {
		n = len(g.extractions)
	}
	out := make([]model.Extraction, 0, n)
	for i := len(g.extractions) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, g.extractions[i])
	}
	return out
}

func (g *ExtractionLog) ByID(id string) (model.Extraction, bool) {
	for _, e := range g.extractions {
		if e.ID == id {
			return e, true
		}
	}
	return model.Extraction{}, false
}
