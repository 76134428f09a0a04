package engine

import (
	"errors"
	"fmt"
)

// Channel selects the listing mode a ranking request is scoped to.
type Channel string

const (
	// ChannelWholesale is the default B2B listing mode.
	ChannelWholesale Channel = "wholesale"
	// ChannelDirect is the consumer-facing listing mode. Only products
	// explicitly flagged for it are eligible there.
	ChannelDirect Channel = "direct"
)

// Sentinel errors returned by the engine.
var (
	// ErrInvalidOptions flags a malformed request; no ranking work is
	// attempted and the input is never silently corrected.
	ErrInvalidOptions = errors.New("invalid search options")
	// ErrRankingUnavailable flags a failed ranking: an underlying data
	// provider could not be read, so no result set exists at all. Callers
	// must not mistake this for an empty result.
	ErrRankingUnavailable = errors.New("ranking unavailable")
)

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// SearchOptions is the request surface of the engine. Every field is
// optional; the zero value plus a page and page size is a valid full-catalog
// ranking request.
type SearchOptions struct {
	// ViewerID personalizes the ranking when present. Anonymous requests
	// get zero follow/wishlist contributions.
	ViewerID *uint

	// Query is a free-text filter matched against product names and
	// precomputed keyword sets.
	Query string

	// Category restricts results to an exact category match. Empty or the
	// CategoryAll sentinel means no restriction.
	Category string

	// VerifiedOnly restricts results to sellers whose verification status
	// is exactly Verified.
	VerifiedOnly bool

	// MinPrice and MaxPrice bound the channel-resolved comparison price.
	// Either bound may be open.
	MinPrice *float64
	MaxPrice *float64

	// MOQ and MOQRange define the minimum-order-quantity window filter,
	// applied on the wholesale channel only: the effective MOQ must lie in
	// [MOQ-MOQRange, MOQ+MOQRange] (lower bound clamped to 0). The
	// tolerance is always caller-supplied; a target without a range means
	// an exact window.
	MOQ      *int
	MOQRange *int

	// MinRating is the rating floor, 0 meaning none.
	MinRating float64

	// Page is 1-based. PageSize is per-request; the engine enforces a
	// configured maximum.
	Page     int
	PageSize int

	// Channel selects wholesale (default when empty) or direct mode.
	Channel Channel
}

// IsDirect reports whether the request is scoped to the direct channel.
func (o *SearchOptions) IsDirect() bool {
	return o.Channel == ChannelDirect
}

// Validate rejects malformed options up front, per request. maxPageSize
// caps the per-request page size to keep a hostile caller from forcing
// pathological full-catalog serializations.
func (o *SearchOptions) Validate(maxPageSize int) error {
	if o.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidOptions, o.Page)
	}
	if o.PageSize < 1 {
		return fmt.Errorf("%w: page size must be >= 1, got %d", ErrInvalidOptions, o.PageSize)
	}
	if maxPageSize > 0 && o.PageSize > maxPageSize {
		return fmt.Errorf("%w: page size %d exceeds maximum %d", ErrInvalidOptions, o.PageSize, maxPageSize)
	}
	if o.MinPrice != nil && *o.MinPrice < 0 {
		return fmt.Errorf("%w: min price must be >= 0", ErrInvalidOptions)
	}
	if o.MaxPrice != nil && *o.MaxPrice < 0 {
		return fmt.Errorf("%w: max price must be >= 0", ErrInvalidOptions)
	}
	if o.MinPrice != nil && o.MaxPrice != nil && *o.MinPrice > *o.MaxPrice {
		return fmt.Errorf("%w: min price %v exceeds max price %v", ErrInvalidOptions, *o.MinPrice, *o.MaxPrice)
	}
	if o.MOQ != nil && *o.MOQ < 0 {
		return fmt.Errorf("%w: moq target must be >= 0", ErrInvalidOptions)
	}
	if o.MOQRange != nil && *o.MOQRange < 0 {
		return fmt.Errorf("%w: moq range must be >= 0", ErrInvalidOptions)
	}
	if o.MinRating < 0 || o.MinRating > 5 {
		return fmt.Errorf("%w: min rating must be between 0 and 5, got %v", ErrInvalidOptions, o.MinRating)
	}
	switch o.Channel {
	case "", ChannelWholesale, ChannelDirect:
	default:
		return fmt.Errorf("%w: unknown channel %q", ErrInvalidOptions, o.Channel)
	}
	return nil
}
