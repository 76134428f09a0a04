// Package engine implements the marketplace discovery/ranking engine: a
// per-request pipeline that filters the published catalog down to eligible
// candidates, scores each one with an additive weighted model, and returns a
// sorted page. The engine is read-only over externally owned data and keeps
// no state between invocations.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"discovery-service/internal/model"
	"discovery-service/internal/provider"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// auxFetchConcurrency bounds the batched side-signal lookups so a large
// result set cannot open an unbounded number of store reads at once.
const auxFetchConcurrency = 8

// RankedProduct is the read model returned per candidate: the product, its
// computed score, the sponsored badge, and denormalized seller display
// fields. It is composed once per candidate and never mutated afterwards.
type RankedProduct struct {
	model.Product
	Score              float64 `json:"score"`
	IsSponsored        bool    `json:"is_sponsored"`
	SellerName         string  `json:"seller_name"`
	SellerSlug         string  `json:"seller_slug"`
	SellerLocation     string  `json:"seller_location"`
	SellerLeadTimeDays int     `json:"seller_lead_time_days"`
	SellerVerified     bool    `json:"seller_verified"`
}

// RankedPage is one page of a ranking plus the totals for the whole
// filtered set.
type RankedPage struct {
	Products   []RankedProduct `json:"products"`
	TotalCount int             `json:"total_count"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}

// Config wires an Engine.
type Config struct {
	Catalog      provider.Catalog
	Sellers      provider.SellerDirectory
	Interactions provider.Interactions
	Moderation   provider.Moderation
	Placements   provider.Placements
	Weights      Weights
	MaxPageSize  int
	Logger       *zap.Logger
}

// Engine ranks the product catalog per request.
type Engine struct {
	catalog      provider.Catalog
	sellers      provider.SellerDirectory
	interactions provider.Interactions
	moderation   provider.Moderation
	placements   provider.Placements
	weights      Weights
	maxPageSize  int
	log          *zap.Logger
	now          func() time.Time
}

// New creates an engine. A zero-valued weight table falls back to
// DefaultWeights.
func New(cfg Config) *Engine {
	weights := cfg.Weights
	if weights.PinBonus == 0 {
		weights = DefaultWeights()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		catalog:      cfg.Catalog,
		sellers:      cfg.Sellers,
		interactions: cfg.Interactions,
		moderation:   cfg.Moderation,
		placements:   cfg.Placements,
		weights:      weights,
		maxPageSize:  cfg.MaxPageSize,
		log:          log,
		now:          time.Now,
	}
}

// RankProducts is the single ranking entry point: validate, fetch, filter,
// score, sort, page.
//
// The five request-level provider reads run concurrently; any of them
// failing fails the whole request as ErrRankingUnavailable, so a caller can
// never mistake a broken ranking for "no matching products". Per-candidate
// side-signal lookups degrade to neutral instead.
func (e *Engine) RankProducts(ctx context.Context, opts SearchOptions) (*RankedPage, error) {
	if err := opts.Validate(e.maxPageSize); err != nil {
		return nil, err
	}

	products, sellers, overrides, aux, err := e.fetchRequestData(ctx, &opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankingUnavailable, err)
	}

	// Hard eligibility filters before any scoring. Orphaned products pass a
	// nil seller and are dropped by the pipeline's first predicate.
	candidates := make([]model.Product, 0, len(products))
	for _, p := range products {
		var seller *model.Seller
		if s, ok := sellers[p.SellerID]; ok {
			seller = &s
		}
		if eligible(&p, seller, &opts) {
			candidates = append(candidates, p)
		}
	}

	e.applyOverrides(overrides, aux)
	e.fetchCandidateSignals(ctx, candidates, aux)

	// Synchronous scoring pass over the batch-fetched signals.
	ranked := make([]RankedProduct, 0, len(candidates))
	for _, p := range candidates {
		seller := sellers[p.SellerID]
		score, sponsored := e.weights.score(&p, &seller, aux)
		ranked = append(ranked, RankedProduct{
			Product:            p,
			Score:              score,
			IsSponsored:        sponsored,
			SellerName:         seller.Name,
			SellerSlug:         seller.Slug,
			SellerLocation:     seller.Location,
			SellerLeadTimeDays: seller.LeadTimeDays,
			SellerVerified:     seller.VerificationStatus == model.VerificationVerified,
		})
	}

	// Descending score; ascending product ID as a stable tiebreak so
	// pagination is deterministic.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})

	totalCount := len(ranked)
	totalPages := (totalCount + opts.PageSize - 1) / opts.PageSize

	start := (opts.Page - 1) * opts.PageSize
	if start > totalCount {
		start = totalCount
	}
	end := start + opts.PageSize
	if end > totalCount {
		end = totalCount
	}

	return &RankedPage{
		Products:   ranked[start:end],
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
	}, nil
}

// fetchRequestData issues the independent request-level provider reads
// concurrently: catalog, seller directory, placement overrides, and the
// viewer's interactions when a viewer is present.
func (e *Engine) fetchRequestData(ctx context.Context, opts *SearchOptions) ([]model.Product, map[uint]model.Seller, []model.AdSlot, *auxSignals, error) {
	var (
		products  []model.Product
		sellers   map[uint]model.Seller
		overrides []model.AdSlot
	)
	aux := newAuxSignals()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		products, err = e.catalog.ListPublishedProducts(gctx)
		if err != nil {
			return fmt.Errorf("listing published products: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		sellers, err = e.sellers.GetSellersByIDs(gctx, nil)
		if err != nil {
			return fmt.Errorf("loading seller directory: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		overrides, err = e.placements.ListPlacementOverrides(gctx)
		if err != nil {
			return fmt.Errorf("listing placement overrides: %w", err)
		}
		return nil
	})

	if opts.ViewerID != nil {
		viewerID := *opts.ViewerID
		g.Go(func() error {
			followed, err := e.interactions.GetFollowedSellerIDs(gctx, viewerID)
			if err != nil {
				return fmt.Errorf("loading followed sellers: %w", err)
			}
			for _, id := range followed {
				aux.followedSellers[id] = true
			}
			return nil
		})
		g.Go(func() error {
			wishlisted, err := e.interactions.GetWishlistedProductIDs(gctx, viewerID)
			if err != nil {
				return fmt.Errorf("loading wishlist: %w", err)
			}
			for _, id := range wishlisted {
				aux.wishlist[id] = true
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, nil, nil, err
	}
	return products, sellers, overrides, aux, nil
}

// applyOverrides folds the non-expired placement overrides into the pin
// sets. Expired records may persist in storage but never influence ranking.
func (e *Engine) applyOverrides(overrides []model.AdSlot, aux *auxSignals) {
	now := e.now()
	for _, slot := range overrides {
		if slot.IsExpired(now) {
			continue
		}
		switch slot.EntityType {
		case model.SlotEntityProduct:
			for _, id := range slot.EntityIDs {
				aux.pinnedProducts[id] = true
			}
		case model.SlotEntitySeller:
			for _, id := range slot.EntityIDs {
				aux.pinnedSellers[id] = true
			}
		}
	}
}

// fetchCandidateSignals batch-fetches the data-dependent side signals for
// the surviving candidates: one plan lookup per distinct seller, one
// moderation status and one report count per product. Lookups run
// concurrently with bounded parallelism; a failed lookup logs a warning and
// leaves that term neutral, because a missing side signal must never remove
// an otherwise-eligible product.
func (e *Engine) fetchCandidateSignals(ctx context.Context, candidates []model.Product, aux *auxSignals) {
	sellerIDs := make(map[uint]bool)
	for _, p := range candidates {
		sellerIDs[p.SellerID] = true
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(auxFetchConcurrency)

	for sellerID := range sellerIDs {
		g.Go(func() error {
			plan, err := e.sellers.GetActiveMarketingPlan(gctx, sellerID)
			if err != nil {
				e.log.Warn("marketing plan lookup failed, term degraded to zero",
					zap.Uint("seller_id", sellerID), zap.Error(err))
				return nil
			}
			if plan != nil {
				mu.Lock()
				aux.plans[sellerID] = plan
				mu.Unlock()
			}
			return nil
		})
	}

	for _, p := range candidates {
		productID := p.ID
		g.Go(func() error {
			status, err := e.moderation.GetProductModerationStatus(gctx, productID)
			if err != nil {
				e.log.Warn("moderation lookup failed, term degraded to zero",
					zap.Uint("product_id", productID), zap.Error(err))
				return nil
			}
			if status.IsDemoted {
				mu.Lock()
				aux.demotedProducts[productID] = true
				mu.Unlock()
			}
			return nil
		})
		g.Go(func() error {
			count, err := e.moderation.CountUnresolvedReports(gctx, productID)
			if err != nil {
				e.log.Warn("report count lookup failed, term degraded to zero",
					zap.Uint("product_id", productID), zap.Error(err))
				return nil
			}
			if count > 0 {
				mu.Lock()
				aux.reportCounts[productID] = count
				mu.Unlock()
			}
			return nil
		})
	}

	// Goroutines never return errors; Wait only joins them.
	_ = g.Wait()
}
