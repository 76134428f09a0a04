package engine

import (
	"testing"

	"discovery-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestEligibleSellerGates(t *testing.T) {
	p := testProduct(1, 10, 100)
	opts := baseOptions()

	t.Run("orphaned product is dropped", func(t *testing.T) {
		assert.False(t, eligible(&p, nil, &opts))
	})

	t.Run("suspended seller is rejected", func(t *testing.T) {
		s := testSeller(10)
		s.Suspension.IsSuspended = true
		assert.False(t, eligible(&p, &s, &opts))
	})

	t.Run("restricted seller is not hard-filtered", func(t *testing.T) {
		// Only the explicit suspension boolean gates eligibility; the
		// Restricted verification status alone does not.
		s := testSeller(10)
		s.VerificationStatus = model.VerificationRestricted
		assert.True(t, eligible(&p, &s, &opts))
	})
}

func TestEligibleVerifiedOnly(t *testing.T) {
	p := testProduct(1, 10, 100)
	opts := baseOptions()
	opts.VerifiedOnly = true

	// Only the exact Verified status passes; other trust states do not.
	for _, status := range []model.VerificationStatus{
		model.VerificationUnsubmitted,
		model.VerificationPendingLegal,
		model.VerificationPendingAdmin,
		model.VerificationActionRequired,
		model.VerificationRestricted,
	} {
		s := testSeller(10)
		s.VerificationStatus = status
		assert.Falsef(t, eligible(&p, &s, &opts), "status %s must not pass verified-only", status)
	}

	s := testSeller(10)
	s.VerificationStatus = model.VerificationVerified
	assert.True(t, eligible(&p, &s, &opts))
}

func TestEligibleCategory(t *testing.T) {
	p := testProduct(1, 10, 100)
	p.Category = "Electronics"
	s := testSeller(10)

	tests := []struct {
		name     string
		category string
		want     bool
	}{
		{"no category filter", "", true},
		{"all sentinel", CategoryAll, true},
		{"exact match", "Electronics", true},
		{"case-sensitive mismatch", "electronics", false},
		{"other category", "Apparel", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseOptions()
			opts.Category = tt.category
			assert.Equal(t, tt.want, eligible(&p, &s, &opts))
		})
	}
}

func TestEligiblePriceWindow(t *testing.T) {
	s := testSeller(10)

	t.Run("bounds are inclusive of the window", func(t *testing.T) {
		p := testProduct(1, 10, 500)
		opts := baseOptions()
		opts.MinPrice = floatPtr(500)
		opts.MaxPrice = floatPtr(500)
		assert.True(t, eligible(&p, &s, &opts))

		opts.MinPrice = floatPtr(501)
		assert.False(t, eligible(&p, &s, &opts))
	})

	t.Run("product with no variants resolves to price 0", func(t *testing.T) {
		p := testProduct(1, 10, 0)
		p.Variants = nil

		opts := baseOptions()
		assert.True(t, eligible(&p, &s, &opts))

		opts.MinPrice = floatPtr(1)
		assert.False(t, eligible(&p, &s, &opts))
	})

	t.Run("retail price only counts on the direct channel", func(t *testing.T) {
		p := testProduct(1, 10, 999)
		p.ListedOnDirect = true
		p.Variants[0].RetailPrice = floatPtr(1500)

		opts := baseOptions()
		opts.MinPrice = floatPtr(1000)
		assert.False(t, eligible(&p, &s, &opts))

		opts.Channel = ChannelDirect
		assert.True(t, eligible(&p, &s, &opts))
	})
}

func TestEligibleMOQWindow(t *testing.T) {
	s := testSeller(10)
	s.DefaultMOQ = 40

	t.Run("window is inclusive", func(t *testing.T) {
		p := testProduct(1, 10, 100)
		p.MOQ = intPtr(150)

		opts := baseOptions()
		opts.MOQ = intPtr(100)
		opts.MOQRange = intPtr(50)
		assert.True(t, eligible(&p, &s, &opts))

		opts.MOQRange = intPtr(49)
		assert.False(t, eligible(&p, &s, &opts))
	})

	t.Run("missing range means exact window", func(t *testing.T) {
		p := testProduct(1, 10, 100)
		p.MOQ = intPtr(100)

		opts := baseOptions()
		opts.MOQ = intPtr(100)
		assert.True(t, eligible(&p, &s, &opts))

		opts.MOQ = intPtr(101)
		assert.False(t, eligible(&p, &s, &opts))
	})

	t.Run("seller default applies when product MOQ unset", func(t *testing.T) {
		p := testProduct(1, 10, 100)

		opts := baseOptions()
		opts.MOQ = intPtr(40)
		assert.True(t, eligible(&p, &s, &opts))
	})

	t.Run("not applied on the direct channel", func(t *testing.T) {
		p := testProduct(1, 10, 100)
		p.ListedOnDirect = true
		p.MOQ = intPtr(500)

		opts := baseOptions()
		opts.Channel = ChannelDirect
		opts.MOQ = intPtr(10)
		opts.MOQRange = intPtr(5)
		assert.True(t, eligible(&p, &s, &opts))
	})

	t.Run("lower bound clamps to zero", func(t *testing.T) {
		p := testProduct(1, 10, 100)
		p.MOQ = intPtr(0)

		opts := baseOptions()
		opts.MOQ = intPtr(10)
		opts.MOQRange = intPtr(50)
		assert.True(t, eligible(&p, &s, &opts))
	})
}

func TestEligibleRatingFloor(t *testing.T) {
	s := testSeller(10)
	p := testProduct(1, 10, 100)
	p.Rating = 3.5

	opts := baseOptions()
	opts.MinRating = 3.5
	assert.True(t, eligible(&p, &s, &opts))

	opts.MinRating = 3.6
	assert.False(t, eligible(&p, &s, &opts))

	// Unrated product defaults to 0 and fails any positive floor.
	unrated := testProduct(2, 10, 100)
	opts.MinRating = 0.5
	assert.False(t, eligible(&unrated, &s, &opts))
}

func TestEligibleTextQuery(t *testing.T) {
	s := testSeller(10)
	p := testProduct(1, 10, 100)
	p.Name = "Industrial Widget Press"
	p.SearchKeywords = []string{"widget", "stamping", "press"}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty query matches", "", true},
		{"substring of name, case-insensitive", "widget pre", true},
		{"keyword membership", "stamping", true},
		{"keyword membership is case-insensitive", "STAMPING", true},
		{"no match on either", "lathe", false},
		{"partial keyword is not membership", "stamp", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseOptions()
			opts.Query = tt.query
			assert.Equal(t, tt.want, eligible(&p, &s, &opts))
		})
	}
}
