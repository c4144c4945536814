package tracker

import (
	"math"

	"github.com/google/uuid"
)

// MaxHours is the most time a single task can claim.
const MaxHours = 24

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}

// SumHours totals the hours of tasks. Non-finite values count as zero.
func SumHours(tasks []Task) float64 {
	var total float64
	for _, t := range tasks {
		total += finite(float64(t.Hours))
	}
	return total
}

// RoundToTenth rounds to one decimal place.
func RoundToTenth(n float64) float64 {
	return math.Round(finite(n)*10) / 10
}
