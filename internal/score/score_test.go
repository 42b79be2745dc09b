package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slabwatch/slabwatch/internal/domain"
)

var anchor = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func quoteAt(valueCents int64) *domain.PriceQuote {
	return &domain.PriceQuote{ValueCents: valueCents, Source: domain.SourceLocalCatalog}
}

func TestDeal_NoVerifiedValueScoresZero(t *testing.T) {
	assert.Zero(t, Deal(100, nil, nil, nil, 0, anchor))
	assert.Zero(t, Deal(100, quoteAt(0), nil, nil, 0, anchor))
	assert.Zero(t, Deal(100, quoteAt(-5), nil, nil, 0, anchor))
}

func TestDeal_DiscountBase(t *testing.T) {
	// 4000 against a 12000 value is a 66.67% discount, rounded to 67.
	assert.Equal(t, 67, Deal(4000, quoteAt(12000), nil, nil, 0, anchor))
	assert.Equal(t, 50, Deal(6000, quoteAt(12000), nil, nil, 0, anchor))
	assert.Equal(t, 0, Deal(12000, quoteAt(12000), nil, nil, 0, anchor))
	// Overpriced listings clamp at 0, never negative.
	assert.Equal(t, 0, Deal(20000, quoteAt(12000), nil, nil, 0, anchor))
}

func TestDeal_MonotoneInPrice(t *testing.T) {
	prev := 101
	for price := int64(1000); price <= 12000; price += 1000 {
		s := Deal(price, quoteAt(12000), nil, nil, 0, anchor)
		assert.LessOrEqual(t, s, prev, "score never rises as the price rises")
		prev = s
	}
}

func TestDeal_AuctionBonuses(t *testing.T) {
	base := Deal(6000, quoteAt(12000), nil, nil, 0, anchor)

	soon := &AuctionInfo{EndsAt: anchor.Add(30 * time.Minute), BidCount: 2}
	assert.Equal(t, base+10+15, Deal(6000, quoteAt(12000), &AuctionInfo{EndsAt: anchor.Add(10 * time.Minute), BidCount: 2}, nil, 0, anchor))
	assert.Equal(t, base+10, Deal(6000, quoteAt(12000), soon, nil, 0, anchor))

	// Bid-count thresholds gate each bonus.
	busy := &AuctionInfo{EndsAt: anchor.Add(10 * time.Minute), BidCount: 4}
	assert.Equal(t, base+10, Deal(6000, quoteAt(12000), busy, nil, 0, anchor))
	crowded := &AuctionInfo{EndsAt: anchor.Add(10 * time.Minute), BidCount: 5}
	assert.Equal(t, base, Deal(6000, quoteAt(12000), crowded, nil, 0, anchor))

	// Already-ended and far-out auctions earn nothing.
	assert.Equal(t, base, Deal(6000, quoteAt(12000), &AuctionInfo{EndsAt: anchor.Add(-time.Minute)}, nil, 0, anchor))
	assert.Equal(t, base, Deal(6000, quoteAt(12000), &AuctionInfo{EndsAt: anchor.Add(2 * time.Hour)}, nil, 0, anchor))
}

func TestDeal_SellerBonuses(t *testing.T) {
	base := Deal(6000, quoteAt(12000), nil, nil, 0, anchor)

	assert.Equal(t, base+5, Deal(6000, quoteAt(12000), nil, &SellerInfo{FeedbackPct: 99.5}, 0, anchor))
	assert.Equal(t, base+3, Deal(6000, quoteAt(12000), nil, &SellerInfo{FeedbackPct: 98, FeedbackCount: 1000}, 0, anchor))
	assert.Equal(t, base+8, Deal(6000, quoteAt(12000), nil, &SellerInfo{FeedbackPct: 99.9, FeedbackCount: 2500}, 0, anchor))
	assert.Equal(t, base, Deal(6000, quoteAt(12000), nil, &SellerInfo{FeedbackPct: 99.4, FeedbackCount: 999}, 0, anchor))
}

func TestDeal_ShippingPenalty(t *testing.T) {
	base := Deal(6000, quoteAt(12000), nil, nil, 0, anchor)

	assert.Equal(t, base, Deal(6000, quoteAt(12000), nil, nil, 500, anchor))
	assert.Equal(t, base-5, Deal(6000, quoteAt(12000), nil, nil, 501, anchor))
}

func TestDeal_ClampsAt100(t *testing.T) {
	// 95% discount with every bonus stacked stays capped.
	auction := &AuctionInfo{EndsAt: anchor.Add(5 * time.Minute), BidCount: 0}
	seller := &SellerInfo{FeedbackPct: 100, FeedbackCount: 5000}
	assert.Equal(t, 100, Deal(600, quoteAt(12000), auction, seller, 0, anchor))
}

func TestDeal_Deterministic(t *testing.T) {
	auction := &AuctionInfo{EndsAt: anchor.Add(10 * time.Minute), BidCount: 1}
	seller := &SellerInfo{FeedbackPct: 99.8, FeedbackCount: 1200}
	first := Deal(4000, quoteAt(12000), auction, seller, 600, anchor)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Deal(4000, quoteAt(12000), auction, seller, 600, anchor))
	}
}
