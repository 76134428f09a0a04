package engine

// Marketing plan tier identifiers, ascending by bonus.
const (
	PlanBasic = "basic"
	PlanBoost = "boost"
	PlanSurge = "surge"
)

// Weights is the additive scoring table. All contributions are summed with
// no normalization or capping, so the score is unbounded in both directions.
// Relative ordering matters: the pin bonus must dominate every other
// combination of positive terms within realistic bounds, and plan tiers must
// stay ascending.
type Weights struct {
	// PinBonus applies when a placement override pins the product or its
	// seller. Highest-priority signal in the system.
	PinBonus float64

	// PlanTierBonuses maps plan identifiers to their sponsorship bonus.
	// PlanBaseBonus applies to unrecognized plan identifiers.
	PlanTierBonuses map[string]float64
	PlanBaseBonus   float64

	// VerifiedBonus applies when the seller is exactly Verified.
	VerifiedBonus float64

	// PerStar and PerReview scale the product's rating and review count.
	PerStar   float64
	PerReview float64

	// DemotedPenalty is subtracted once for a demoted product and again for
	// a demoted seller; both can apply to the same candidate.
	DemotedPenalty float64

	// PerReportPenalty is subtracted per unresolved abuse report.
	PerReportPenalty float64

	// FollowedSellerBonus and WishlistBonus apply only when a viewer
	// context is present.
	FollowedSellerBonus float64
	WishlistBonus       float64
}

// DefaultWeights returns the production weight table.
func DefaultWeights() Weights {
	return Weights{
		PinBonus: 1000,
		PlanTierBonuses: map[string]float64{
			PlanBasic: 100,
			PlanBoost: 250,
			PlanSurge: 500,
		},
		PlanBaseBonus:       100,
		VerifiedBonus:       50,
		PerStar:             10,
		PerReview:           0.2,
		DemotedPenalty:      200,
		PerReportPenalty:    10,
		FollowedSellerBonus: 30,
		WishlistBonus:       20,
	}
}

// PlanBonus resolves the bonus for a plan identifier.
func (w *Weights) PlanBonus(planID string) float64 {
	if bonus, ok := w.PlanTierBonuses[planID]; ok {
		return bonus
	}
	return w.PlanBaseBonus
}
