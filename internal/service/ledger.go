package service

import (
	"strings"
	"time"

	"github.com/Mixilino/coffee-management/internal/model"
)

// RestockMode selects which underlying field absorbs a restock amount.
//
// Add treats the amount as a nominal purchase on top of boughtGrams. Set
// forces remaining to read exactly the amount by solving for the
// manualOffset delta, leaving purchase history untouched. Custom also forces
// remaining to the amount but re-derives boughtGrams instead, keeping
// manualOffset fixed as an audit quantity. Set and Custom land on the same
// remaining value; they differ in which field carries the correction.
type RestockMode string

const (
	RestockAdd    RestockMode = "add"
	RestockSet    RestockMode = "set"
	RestockCustom RestockMode = "custom"
)

// Ledger owns the coffee collection and the append-only offset audit log.
// All mutations are synchronous run-to-completion; missing ids are silent
// no-ops and input validation is the caller's responsibility.
type Ledger struct {
	coffees    []model.Coffee
	offsetLogs []model.OffsetLog
}

func NewLedger(coffees []model.Coffee, offsetLogs []model.OffsetLog) *Ledger {
	return &Ledger{coffees: coffees, offsetLogs: offsetLogs}
}

// recompute is the single place the derived fields are refreshed. Every
// mutation ends here so remaining never survives as an out-of-sync interim
// value. Remaining itself is not clamped; negative means over-tracking.
func recompute(c *model.Coffee, now time.Time) {
	c.Remaining = c.BoughtGrams - c.UsedGrams + c.ManualOffset
	c.IsActive = !c.IsArchived && c.Remaining > 0
	c.UpdatedAt = now
}

func (l *Ledger) find(id string) *model.Coffee {
	for i := range l.coffees {
		if l.coffees[i].ID == id {
			return &l.coffees[i]
		}
	}
	return nil
}

// AddOrRestock creates a new coffee, or restocks an existing non-archived
// coffee matching on normalized (name, seller). Precondition: name is
// non-empty after trimming and grams > 0.
func (l *Ledger) AddOrRestock(name, seller string, grams float64) model.Coffee {
	now := time.Now()
	name = strings.TrimSpace(name)
	seller = normalizeSeller(seller)

	for i := range l.coffees {
		c := &l.coffees[i]
		if c.IsArchived {
			continue
		}
		if normalizeName(c.Name) == normalizeName(name) && normalizeName(c.Seller) == normalizeName(seller) {
			c.BoughtGrams += grams
			recompute(c, now)
			return *c
		}
	}

	coffee := model.Coffee{
		ID:          newID(),
		Name:        name,
		Seller:      seller,
		BoughtGrams: grams,
		Remaining:   grams,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	l.coffees = append(l.coffees, coffee)
	return coffee
}

// Restock applies the amount according to mode. No-op if id is unknown.
func (l *Ledger) Restock(id string, mode RestockMode, amount float64) {
	c := l.find(id)
	if c == nil {
		return
	}

	switch mode {
	case RestockAdd:
		c.BoughtGrams += amount
	case RestockSet:
		tracked := c.BoughtGrams - c.UsedGrams + c.ManualOffset
		c.ManualOffset += amount - tracked
	case RestockCustom:
		c.BoughtGrams = amount + c.UsedGrams - c.ManualOffset
	}

	recompute(c, time.Now())
}

// AdjustActualAmount records a ground-truth weight check: the offset is
// solved so the derived formula agrees with the measured remaining, and an
// OffsetLog entry captures before/after/offset/reason.
func (l *Ledger) AdjustActualAmount(id string, actualGrams float64, reason string) {
	c := l.find(id)
	if c == nil {
		return
	}

	now := time.Now()
	previousRemaining := c.Remaining
	tracked := c.BoughtGrams - c.UsedGrams
	c.ManualOffset = actualGrams - tracked
	c.Remaining = actualGrams
	c.IsActive = !c.IsArchived && c.Remaining > 0
	c.UpdatedAt = now

	l.offsetLogs = append(l.offsetLogs, model.OffsetLog{
		CoffeeID:          c.ID,
		Timestamp:         now,
		PreviousRemaining: previousRemaining,
		NewRemaining:      actualGrams,
		Offset:            c.ManualOffset,
		Reason:            reason,
	})
}

// Archive soft-deletes a coffee. There is no unarchive operation.
func (l *Ledger) Archive(id string) {
	c := l.find(id)
	if c == nil {
		return
	}
	now := time.Now()
	c.IsArchived = true
	c.IsActive = false
	c.ArchivedAt = &now
	c.UpdatedAt = now
}

// DeletePermanently removes an already-archived coffee. Offset log entries
// are an independent audit stream and are never cascaded.
func (l *Ledger) DeletePermanently(id string) {
	for i := range l.coffees {
		if l.coffees[i].ID == id {
			if !l.coffees[i].IsArchived {
				return
			}
			l.coffees = append(l.coffees[:i], l.coffees[i+1:]...)
			return
		}
	}
}

// RecalculateUsed is the reconciliation primitive: usedGrams is always fully
// recomputed from the authoritative extraction collection, never adjusted
// piecemeal. The extraction log must call this after every insert or delete
// touching the coffee.
func (l *Ledger) RecalculateUsed(coffeeID string, extractions []model.Extraction) {
	c := l.find(coffeeID)
	if c == nil {
		return
	}

	used := 0.0
	for _, e := range extractions {
		if e.CoffeeID == coffeeID {
			used += e.GramsIn
		}
	}
	c.UsedGrams = used
	recompute(c, time.Now())
}

// ImportMerge inserts incoming coffees whose ids are not already present.
// Existing ids are never overwritten. Returns the number inserted.
func (l *Ledger) ImportMerge(coffees []model.Coffee) int {
	inserted := 0
	for _, in := range coffees {
		if l.find(in.ID) != nil {
			continue
		}
		in.Seller = normalizeSeller(in.Seller)
		l.coffees = append(l.coffees, in)
		inserted++
	}
	return inserted
}

func (l *Ledger) All() []model.Coffee {
	return append([]model.Coffee(nil), l.coffees...)
}

// Current returns non-archived coffees.
func (l *Ledger) Current() []model.Coffee {
	out := make([]model.Coffee, 0, len(l.coffees))
	for _, c := range l.coffees {
		if !c.IsArchived {
			out = append(out, c)
		}
	}
	return out
}

// Active returns coffees available for a new shot.
func (l *Ledger) Active() []model.Coffee {
	out := make([]model.Coffee, 0, len(l.coffees))
	for _, c := range l.coffees {
		if c.IsActive && c.Remaining > 0 {
			out = append(out, c)
		}
	}
	return out
}

func (l *Ledger) ByID(id string) (model.Coffee, bool) {
	if c := l.find(id); c != nil {
		return *c, true
	}
	return model.Coffee{}, false
}

// ByPair finds the non-archived coffee matching the normalized name+seller
// pair, the same matching rule AddOrRestock merges on.
func (l *Ledger) ByPair(name, seller string) (model.Coffee, bool) {
	name = normalizeName(name)
	seller = normalizeName(normalizeSeller(seller))
	for _, c := range l.coffees {
		if !c.IsArchived && normalizeName(c.Name) == name && normalizeName(c.Seller) == seller {
			return c, true
		}
	}
	return model.Coffee{}, false
}

func (l *Ledger) OffsetLogs() []model.OffsetLog {
	return append([]model.OffsetLog(nil), l.offsetLogs...)
}
