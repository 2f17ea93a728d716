package model

import "time"

// Field names in json tags are the persisted snapshot and CSV contract;
// they must stay stable across schema versions.

type Coffee struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Seller       string     `json:"seller"`
	BoughtGrams  float64    `json:"boughtGrams"`
	UsedGrams    float64    `json:"usedGrams"`
	ManualOffset float64    `json:"manualOffset"`
	Remaining    float64    `json:"remaining"`
	IsActive     bool       `json:"isActive"`
	IsArchived   bool       `json:"isArchived"`
	ArchivedAt   *time.Time `json:"archivedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// OffsetLog is one append-only audit entry for a manual weight correction.
type OffsetLog struct {
	CoffeeID          string    `json:"coffeeId,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	PreviousRemaining float64   `json:"previousRemaining"`
	NewRemaining      float64   `json:"newRemaining"`
	Offset            float64   `json:"offset"`
	Reason            string    `json:"reason,omitempty"`
}

type Extraction struct {
	ID             string          `json:"id"`
	CoffeeID       string          `json:"coffeeId"`
	CoffeeName     string          `json:"coffeeName"`
	CoffeeSeller   string          `json:"coffeeSeller"`
	GramsIn        float64         `json:"gramsIn"`
	GrinderSetting string          `json:"grinderSetting"`
	TimeSeconds    int             `json:"timeSeconds"`
	YieldGrams     float64         `json:"yieldGrams"`
	Ratio          float64         `json:"ratio"`
	Rating         *int            `json:"rating,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	Date           time.Time       `json:"date"`
}

type GrindAdjustment string

const (
	GrindCoarser GrindAdjustment = "coarser"
	GrindFiner   GrindAdjustment = "finer"
	GrindSame    GrindAdjustment = "same"
)

type TimeAdjustment string

const (
	TimeShorter TimeAdjustment = "shorter"
	TimeLonger  TimeAdjustment = "longer"
	TimeSame    TimeAdjustment = "same"
)

type DoseAdjustment string

const (
	DoseMore DoseAdjustment = "more"
	DoseLess DoseAdjustment = "less"
	DoseSame DoseAdjustment = "same"
)

type Severity string

const (
	SeverityNone  Severity = "none"
	SeverityMinor Severity = "minor"
	SeverityMajor Severity = "major"
)

type Recommendation struct {
	AdjustGrind GrindAdjustment `json:"adjustGrind"`
	AdjustTime  TimeAdjustment  `json:"adjustTime"`
	AdjustDose  DoseAdjustment  `json:"adjustDose"`
	Reason      string          `json:"reason"`
	Severity    Severity        `json:"severity"`
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// SuggestedSettings is computed on demand and never persisted.
type SuggestedSettings struct {
	GrinderSetting string     `json:"grinderSetting"`
	GramsIn        float64    `json:"gramsIn"`
	TimeSeconds    int        `json:"timeSeconds"`
	Ratio          float64    `json:"ratio"`
	BasedOn        string     `json:"basedOn,omitempty"`
	Hint           string     `json:"hint,omitempty"`
	Confidence     Confidence `json:"confidence"`
}
