// Package score computes the bounded deal score from price vs. verified
// value plus auction-timing and seller-trust signals. Deterministic: same
// inputs, same score.
package score

import (
	"math"
	"time"

	"github.com/slabwatch/slabwatch/internal/domain"
)

// AuctionInfo carries auction timing inputs, absent for fixed-price
// listings.
type AuctionInfo struct {
	EndsAt   time.Time
	BidCount int
}

// SellerInfo carries seller trust inputs.
type SellerInfo struct {
	FeedbackPct   float64
	FeedbackCount int
}

// Bonus and penalty constants, additive on top of the discount base.
const (
	endingSoonBonus     = 10 // <1h remaining, <5 bids
	endingImminentBonus = 15 // <15min remaining, <3 bids, cumulative
	feedbackPctBonus    = 5  // feedback percentage >= 99.5
	feedbackCountBonus  = 3  // feedback count >= 1000
	shippingPenalty     = 5  // shipping cost over $5

	shippingFreeLimitCents = 500
)

// Deal computes the score in [0,100]. A nil or non-positive quote value
// scores 0 with no adjustments: nothing is a deal without a verified value.
// now anchors the auction-remaining calculation.
func Deal(listingPriceCents int64, quote *domain.PriceQuote, auction *AuctionInfo, seller *SellerInfo, shippingCents int64, now time.Time) int {
	if quote == nil || quote.ValueCents <= 0 {
		return 0
	}

	discountPct := float64(quote.ValueCents-listingPriceCents) / float64(quote.ValueCents)
	score := int(math.Round(discountPct * 100))

	if auction != nil && !auction.EndsAt.IsZero() {
		remaining := auction.EndsAt.Sub(now)
		if remaining > 0 && remaining < time.Hour && auction.BidCount < 5 {
			score += endingSoonBonus
			if remaining < 15*time.Minute && auction.BidCount < 3 {
				score += endingImminentBonus
			}
		}
	}

	if seller != nil {
		if seller.FeedbackPct >= 99.5 {
			score += feedbackPctBonus
		}
		if seller.FeedbackCount >= 1000 {
			score += feedbackCountBonus
		}
	}

	if shippingCents > shippingFreeLimitCents {
		score -= shippingPenalty
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
