package pricing

import "math"

// Depreciation constants for machine resale.
const (
	baseResidualRatio = 0.6  // fraction of the original price kept at age 0
	ageDecayPerDay    = 0.02 // linear decay per day of ownership
	maxAgeDecay       = 0.30 // age decay cap
	durabilitySwing   = 0.2  // ±20% around neutral durability
	neutralDurability = 50.0
	floorRatio        = 0.2 // resale never drops below this fraction
)

// SellPrice computes a machine's residual value in tokens.
//
// The base residual is 60% of the original price, reduced linearly by age
// (2%/day, capped at 30%) and adjusted by durability: above 50 raises the
// price, below 50 lowers it, within ±20% of the age-adjusted value. The
// result never falls below 20% of the original price and is rounded to the
// nearest token.
func SellPrice(originalPrice int64, ageInDays int, durability int) int64 {
	if originalPrice <= 0 {
		return 0
	}
	if ageInDays < 0 {
		ageInDays = 0
	}
	if durability < 0 {
		durability = 0
	}
	if durability > 100 {
		durability = 100
	}

	price := float64(originalPrice) * baseResidualRatio

	decay := float64(ageInDays) * ageDecayPerDay
	if decay > maxAgeDecay {
		decay = maxAgeDecay
	}
	price *= 1 - decay

	price *= 1 + (float64(durability)-neutralDurability)/100*durabilitySwing

	floor := float64(originalPrice) * floorRatio
	if price < floor {
		price = floor
	}

	return int64(math.Round(price))
}
