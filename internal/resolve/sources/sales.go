package sources

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/match"
	"github.com/slabwatch/slabwatch/internal/parse"
	"github.com/slabwatch/slabwatch/internal/refcatalog"
	"github.com/slabwatch/slabwatch/internal/resolve"
)

// Sale is one completed sale scraped by the collaborator.
type Sale struct {
	Title      string    `json:"title"`
	PriceCents int64     `json:"price_cents"`
	URL        string    `json:"url,omitempty"`
	SoldAt     time.Time `json:"sold_at"`
}

// SalesProvider is the collaborator scraper client for completed-sale data.
type SalesProvider interface {
	RecentSales(ctx context.Context, id domain.CardIdentity) ([]Sale, error)
}

// ScrapedSales is the last-resort source: it values a card from real
// completed sales whose titles parse to the exact identity and grade tier.
// The value is the median of matched sale prices; with no matched sales
// there is no value.
type ScrapedSales struct {
	provider SalesProvider
	catalog  *refcatalog.Catalog
	eval     *match.Evaluator
}

// NewScrapedSales creates the scraped-sales source.
func NewScrapedSales(provider SalesProvider, catalog *refcatalog.Catalog) *ScrapedSales {
	return &ScrapedSales{provider: provider, catalog: catalog, eval: match.NewEvaluator()}
}

func (s *ScrapedSales) Name() string { return "scraped-sales" }

func (s *ScrapedSales) Quote(ctx context.Context, id domain.CardIdentity, grade domain.GradeInfo) (*domain.PriceQuote, error) {
	if s.provider == nil {
		return nil, resolve.ErrSourceSkipped
	}

	sales, err := s.provider.RecentSales(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sales scrape failed: %w", err)
	}
	if len(sales) == 0 {
		return nil, resolve.ErrNoCandidateMatch
	}

	wantTier := grade.Tier()
	var matched []int64
	var lastURL string
	for _, sale := range sales {
		if sale.PriceCents <= 0 {
			continue
		}
		candidate := parse.Title(sale.Title, s.catalog)
		if !s.eval.Evaluate(id, candidate).Matched {
			continue
		}
		if parse.GradeFromTitle(sale.Title).Tier() != wantTier {
			continue
		}
		matched = append(matched, sale.PriceCents)
		lastURL = sale.URL
	}
	if len(matched) == 0 {
		return nil, resolve.ErrNoCandidateMatch
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i] < matched[j] })
	value := matched[len(matched)/2]

	return &domain.PriceQuote{
		ValueCents:         value,
		Source:             domain.SourceScrapedSales,
		SourceURL:          lastURL,
		MatchedDescription: id.Describe(),
		Confidence:         domain.ConfidenceHigh,
	}, nil
}
