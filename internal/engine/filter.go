package engine

import "discovery-service/internal/model"

// eligible applies the hard filter pipeline to one candidate. Predicates
// short-circuit on the first failure; their order does not change the result
// set, only the work done per rejected candidate.
//
// seller is nil for orphaned products (seller missing from the directory),
// which are dropped rather than errored.
func eligible(p *model.Product, seller *model.Seller, opts *SearchOptions) bool {
	// Orphaned product: no resolvable seller.
	if seller == nil {
		return false
	}

	// Suspension is absolute. Note the asymmetry: only the explicit
	// suspension boolean gates eligibility, a Restricted verification
	// status does not.
	if seller.Suspension.IsSuspended {
		return false
	}

	// The direct channel only shows products explicitly listed on it.
	if opts.IsDirect() && !p.ListedOnDirect {
		return false
	}

	if opts.Category != "" && opts.Category != CategoryAll && p.Category != opts.Category {
		return false
	}

	if opts.VerifiedOnly && seller.VerificationStatus != model.VerificationVerified {
		return false
	}

	price := p.ComparisonPrice(opts.IsDirect())
	if opts.MinPrice != nil && price < *opts.MinPrice {
		return false
	}
	if opts.MaxPrice != nil && price > *opts.MaxPrice {
		return false
	}

	// MOQ window, wholesale channel only.
	if opts.MOQ != nil && !opts.IsDirect() {
		moq := effectiveMOQ(p, seller)
		tolerance := 0
		if opts.MOQRange != nil {
			tolerance = *opts.MOQRange
		}
		low := *opts.MOQ - tolerance
		if low < 0 {
			low = 0
		}
		high := *opts.MOQ + tolerance
		if moq < low || moq > high {
			return false
		}
	}

	if p.Rating < opts.MinRating {
		return false
	}

	return p.MatchesQuery(opts.Query)
}

// effectiveMOQ resolves a product's MOQ, falling back to the seller default
// and finally to 1.
func effectiveMOQ(p *model.Product, seller *model.Seller) int {
	if p.MOQ != nil {
		return *p.MOQ
	}
	if seller.DefaultMOQ > 0 {
		return seller.DefaultMOQ
	}
	return 1
}
