package resolve

import (
	"github.com/slabwatch/slabwatch/internal/domain"
)

// PriceFor selects the price column for a grade, falling back to the
// ungraded column when the selected column has no positive price. A
// non-positive price at every column is ErrNoPriceData; a value is never
// synthesized.
func PriceFor(prices domain.PriceByTier, grade domain.GradeInfo) (int64, domain.PriceTier, error) {
	tier := grade.Tier()
	if v := prices.At(tier); v > 0 {
		return v, tier, nil
	}
	if tier != domain.TierUngraded {
		if v := prices.At(domain.TierUngraded); v > 0 {
			return v, domain.TierUngraded, nil
		}
	}
	return 0, "", ErrNoPriceData
}
