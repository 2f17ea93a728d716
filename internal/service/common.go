package service

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// DefaultSeller is the sentinel used when a coffee has no seller recorded.
const DefaultSeller = "Unknown"

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func normalizeSeller(seller string) string {
	seller = strings.TrimSpace(seller)
	if seller == "" {
		return DefaultSeller
	}
	return seller
}

func newID() string {
	return uuid.NewString()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
