package domain

import "time"

// Listing is the collaborator-parsed marketplace listing shape the pipeline
// consumes. Optional fields are zero-valued when the marketplace did not
// supply them.
type Listing struct {
	ItemID              string            `json:"item_id"`
	Title               string            `json:"title"`
	StructuredAspects   map[string]string `json:"structured_aspects,omitempty"`
	CertificateNumber   string            `json:"certificate_number,omitempty"`
	ImageURL            string            `json:"image_url,omitempty"`
	PriceCents          int64             `json:"price_cents"`
	ShippingCents       int64             `json:"shipping_cents,omitempty"`
	IsAuction           bool              `json:"is_auction"`
	AuctionEndTime      time.Time         `json:"auction_end_time,omitempty"`
	BidCount            int               `json:"bid_count,omitempty"`
	SellerFeedbackPct   float64           `json:"seller_feedback_pct,omitempty"`
	SellerFeedbackCount int               `json:"seller_feedback_count,omitempty"`
}

// CertificateRecord is the parsed result of a grading-authority certificate
// lookup. Verified ground truth when present.
type CertificateRecord struct {
	CertNumber   string  `json:"cert_number"`
	Authority    string  `json:"authority"`
	Year         int     `json:"year"`
	SetName      string  `json:"set_name"`
	Subject      string  `json:"subject"`
	CardNumber   string  `json:"card_number"`
	Variety      string  `json:"variety,omitempty"`
	NumericGrade float64 `json:"numeric_grade"`
}
