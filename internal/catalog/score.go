package catalog

// ListingRewardPoints is credited to a seller when a listing is created,
// regardless of whether the item ever sells.
const ListingRewardPoints = 10

// SustainabilityScore is computed once at listing time: 50 base, +20 for a
// deep discount (below half the original price), +15/+10 by condition, +5
// for a substantial description.
func SustainabilityScore(price float64, originalPrice *float64, condition Condition, description string) int {
	score := 50
	if originalPrice != nil && price < *originalPrice*0.5 {
		score += 20
	}
	switch condition {
	case ConditionNew, ConditionLikeNew:
		score += 15
	case ConditionGood:
		score += 10
	}
	if len(description) > 100 {
		score += 5
	}
	return score
}
