package scan

import (
	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/score"
)

func auctionOf(listing domain.Listing) *score.AuctionInfo {
	if !listing.IsAuction || listing.AuctionEndTime.IsZero() {
		return nil
	}
	return &score.AuctionInfo{
		EndsAt:   listing.AuctionEndTime,
		BidCount: listing.BidCount,
	}
}

func sellerOf(listing domain.Listing) *score.SellerInfo {
	if listing.SellerFeedbackPct == 0 && listing.SellerFeedbackCount == 0 {
		return nil
	}
	return &score.SellerInfo{
		FeedbackPct:   listing.SellerFeedbackPct,
		FeedbackCount: listing.SellerFeedbackCount,
	}
}
