package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/match"
	"github.com/slabwatch/slabwatch/internal/parse"
	"github.com/slabwatch/slabwatch/internal/refcatalog"
	"github.com/slabwatch/slabwatch/internal/resolve"
)

// ProductSearcher is the collaborator client for the external catalog API.
// It owns the wire format, retries and timeouts; this source only consumes
// its parsed, ranked results.
type ProductSearcher interface {
	Search(ctx context.Context, query string) ([]domain.CatalogProduct, error)
}

// maxExternalCandidates bounds how deep into the ranked results the source
// looks. Results past the first few are overwhelmingly wrong products.
const maxExternalCandidates = 5

// ExternalCatalog resolves prices through the external catalog API. Each
// ranked candidate's naming is parsed with the same rules as listing titles
// and must pass the full predicate chain.
type ExternalCatalog struct {
	searcher ProductSearcher
	catalog  *refcatalog.Catalog
	eval     *match.Evaluator
}

// NewExternalCatalog creates the external catalog API source.
func NewExternalCatalog(searcher ProductSearcher, catalog *refcatalog.Catalog) *ExternalCatalog {
	return &ExternalCatalog{searcher: searcher, catalog: catalog, eval: match.NewEvaluator()}
}

func (e *ExternalCatalog) Name() string { return "external-catalog-api" }

func (e *ExternalCatalog) Quote(ctx context.Context, id domain.CardIdentity, grade domain.GradeInfo) (*domain.PriceQuote, error) {
	if e.searcher == nil {
		return nil, resolve.ErrSourceSkipped
	}

	products, err := e.searcher.Search(ctx, buildQuery(id))
	if err != nil {
		return nil, fmt.Errorf("external catalog search failed: %w", err)
	}
	if len(products) == 0 {
		return nil, resolve.ErrNoCandidateMatch
	}
	if len(products) > maxExternalCandidates {
		products = products[:maxExternalCandidates]
	}

	for _, product := range products {
		candidate := parse.Product(product.ConsoleName, product.ProductName, e.catalog)
		if !e.eval.Evaluate(id, candidate).Matched {
			continue
		}
		value, _, err := resolve.PriceFor(product.Prices, grade)
		if err != nil {
			return nil, err
		}
		return &domain.PriceQuote{
			ValueCents:         value,
			Source:             domain.SourceExternalAPI,
			SourceURL:          product.ProductURL,
			MatchedDescription: candidate.Describe(),
			Confidence:         domain.ConfidenceHigh,
		}, nil
	}
	return nil, resolve.ErrNoCandidateMatch
}

func buildQuery(id domain.CardIdentity) string {
	parts := []string{fmt.Sprintf("%d", id.Year), id.SetName}
	if id.InsertLine != "" {
		parts = append(parts, id.InsertLine)
	}
	if id.Parallel != "" {
		parts = append(parts, id.Parallel)
	}
	parts = append(parts, "#"+id.CardNumber)
	return strings.Join(parts, " ")
}
