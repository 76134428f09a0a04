package engine

import "discovery-service/internal/model"

// auxSignals carries the batch-fetched side signals for the scoring pass,
// keyed by seller or product ID. A missing entry always means "neutral": a
// failed side-signal lookup degrades that term to zero, never removes the
// candidate.
type auxSignals struct {
	pinnedProducts  map[uint]bool
	pinnedSellers   map[uint]bool
	plans           map[uint]*model.MarketingPlan
	demotedProducts map[uint]bool
	reportCounts    map[uint]int
	followedSellers map[uint]bool
	wishlist        map[uint]bool
}

func newAuxSignals() *auxSignals {
	return &auxSignals{
		pinnedProducts:  make(map[uint]bool),
		pinnedSellers:   make(map[uint]bool),
		plans:           make(map[uint]*model.MarketingPlan),
		demotedProducts: make(map[uint]bool),
		reportCounts:    make(map[uint]int),
		followedSellers: make(map[uint]bool),
		wishlist:        make(map[uint]bool),
	}
}

// score computes the additive rank value for one candidate and whether any
// paid signal (pin or plan) contributed, which drives the sponsored badge.
func (w *Weights) score(p *model.Product, seller *model.Seller, aux *auxSignals) (float64, bool) {
	var total float64
	sponsored := false

	// Manual placement override, by product pin or by seller pin.
	if aux.pinnedProducts[p.ID] || aux.pinnedSellers[p.SellerID] {
		total += w.PinBonus
		sponsored = true
	}

	// Paid sponsorship plan, tiered by plan identifier.
	if plan := aux.plans[p.SellerID]; plan != nil {
		total += w.PlanBonus(plan.PlanID)
		sponsored = true
	}

	if seller.VerificationStatus == model.VerificationVerified {
		total += w.VerifiedBonus
	}

	total += p.Rating * w.PerStar
	total += float64(p.ReviewCount) * w.PerReview

	// Moderation penalties cascade: product demotion and seller demotion
	// both subtract when both apply.
	if aux.demotedProducts[p.ID] {
		total -= w.DemotedPenalty
	}
	if seller.IsDemoted {
		total -= w.DemotedPenalty
	}
	total -= float64(aux.reportCounts[p.ID]) * w.PerReportPenalty

	// Personalization, zero for anonymous viewers.
	if aux.followedSellers[p.SellerID] {
		total += w.FollowedSellerBonus
	}
	if aux.wishlist[p.ID] {
		total += w.WishlistBonus
	}

	return total, sponsored
}
