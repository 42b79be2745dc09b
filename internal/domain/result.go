package domain

// ReasonCode classifies why a resolution produced no quote. All four are
// recoverable: they end resolution for one listing with an explicit reason
// and never fall back to an estimated value.
type ReasonCode string

const (
	ReasonInsufficientIdentity ReasonCode = "insufficient-identity"
	ReasonNoCandidateMatch     ReasonCode = "no-candidate-match"
	ReasonNoPriceData          ReasonCode = "no-price-data"
	ReasonSourceUnavailable    ReasonCode = "source-unavailable"
)

// ResolutionResult is the outcome of resolving one identity+grade against
// the price source chain. Quote is nil iff Reason is set.
type ResolutionResult struct {
	Identity CardIdentity `json:"identity"`
	Grade    GradeInfo    `json:"grade"`
	Quote    *PriceQuote  `json:"quote,omitempty"`
	Reason   ReasonCode   `json:"reason,omitempty"`
}

// Resolved reports whether a verified quote was produced.
func (r ResolutionResult) Resolved() bool {
	return r.Quote != nil
}

// DealScoreResult pairs a deal score with the resolution that produced it. A
// score without its provenance is meaningless for this domain.
type DealScoreResult struct {
	ID         string           `json:"id"`
	ListingID  string           `json:"listing_id"`
	Score      int              `json:"score"`
	Confidence Confidence       `json:"confidence"`
	Resolution ResolutionResult `json:"resolution"`
}
