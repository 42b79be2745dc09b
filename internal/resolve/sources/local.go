// Package sources implements the ranked price sources consumed by the
// resolver. Every source applies the same strict matching rules from
// internal/match; they differ only in where candidates come from.
package sources

import (
	"context"
	"sync"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/match"
	"github.com/slabwatch/slabwatch/internal/resolve"
)

// MemoryCatalog is the in-process local price catalog, populated by the
// bulk-ingestion collaborator at start-up and replaceable wholesale on
// refresh.
type MemoryCatalog struct {
	mu      sync.RWMutex
	entries []domain.CatalogEntry
	eval    *match.Evaluator
}

// NewMemoryCatalog creates an empty local catalog source.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{eval: match.NewEvaluator()}
}

// Replace swaps the catalog contents.
func (m *MemoryCatalog) Replace(entries []domain.CatalogEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = entries
}

// Len returns the number of loaded entries.
func (m *MemoryCatalog) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryCatalog) Name() string { return "local-catalog" }

// Quote scans the catalog for an entry whose parsed identity passes every
// predicate, then selects the grade's price column.
func (m *MemoryCatalog) Quote(_ context.Context, id domain.CardIdentity, grade domain.GradeInfo) (*domain.PriceQuote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.entries) == 0 {
		return nil, resolve.ErrSourceSkipped
	}

	for _, entry := range m.entries {
		if !m.eval.Evaluate(id, entry.ParsedIdentity).Matched {
			continue
		}
		value, _, err := resolve.PriceFor(entry.Prices, grade)
		if err != nil {
			return nil, err
		}
		return &domain.PriceQuote{
			ValueCents:         value,
			Source:             domain.SourceLocalCatalog,
			SourceURL:          entry.ProductURL,
			MatchedDescription: entry.ParsedIdentity.Describe(),
			Confidence:         domain.ConfidenceHigh,
		}, nil
	}
	return nil, resolve.ErrNoCandidateMatch
}
