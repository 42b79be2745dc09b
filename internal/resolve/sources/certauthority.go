package sources

import (
	"context"
	"fmt"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/resolve"
)

// ValueEstimator is the collaborator client for a grading authority's own
// market-value service (some authorities publish recent-sale values for
// slabs they graded). A zero value means the authority has no data for this
// identity+grade.
type ValueEstimator interface {
	Estimate(ctx context.Context, id domain.CardIdentity, grade domain.GradeInfo) (valueCents int64, sourceURL string, err error)
}

// CertAuthority ranks first in the chain: when the grading authority itself
// publishes a value for the exact slab, that beats any catalog lookup.
type CertAuthority struct {
	estimator ValueEstimator
}

// NewCertAuthority creates the certificate-authority value source.
func NewCertAuthority(estimator ValueEstimator) *CertAuthority {
	return &CertAuthority{estimator: estimator}
}

func (c *CertAuthority) Name() string { return "certificate-authority" }

func (c *CertAuthority) Quote(ctx context.Context, id domain.CardIdentity, grade domain.GradeInfo) (*domain.PriceQuote, error) {
	if c.estimator == nil {
		return nil, resolve.ErrSourceSkipped
	}

	value, url, err := c.estimator.Estimate(ctx, id, grade)
	if err != nil {
		return nil, fmt.Errorf("authority value lookup failed: %w", err)
	}
	if value <= 0 {
		return nil, resolve.ErrNoCandidateMatch
	}
	return &domain.PriceQuote{
		ValueCents:         value,
		Source:             domain.SourceCertAuthority,
		SourceURL:          url,
		MatchedDescription: id.Describe(),
		Confidence:         domain.ConfidenceVeryHigh,
	}, nil
}
