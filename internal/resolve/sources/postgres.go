package sources

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/match"
	"github.com/slabwatch/slabwatch/internal/parse"
	"github.com/slabwatch/slabwatch/internal/refcatalog"
	"github.com/slabwatch/slabwatch/internal/resolve"
)

// PostgresCatalog serves the local price catalog from Postgres. The SQL
// prefilter narrows on the indexed fields; the strict per-field predicates
// still run in-process so the matching rules live in exactly one place.
type PostgresCatalog struct {
	db      *sqlx.DB
	catalog *refcatalog.Catalog
	eval    *match.Evaluator
}

// NewPostgresCatalog wraps an open sqlx handle. Row parallels go through the
// same color-suffix reduction as parsed listing titles, so rows ingested as
// "Orange Prizm" still match a reconciled "orange".
func NewPostgresCatalog(db *sqlx.DB, catalog *refcatalog.Catalog) *PostgresCatalog {
	return &PostgresCatalog{db: db, catalog: catalog, eval: match.NewEvaluator()}
}

// OpenPostgresCatalog connects and pings.
func OpenPostgresCatalog(dsn string, catalog *refcatalog.Catalog) (*PostgresCatalog, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect price catalog db: %w", err)
	}
	return NewPostgresCatalog(db, catalog), nil
}

type catalogRow struct {
	Year         int            `db:"year"`
	SetName      string         `db:"set_name"`
	InsertLine   sql.NullString `db:"insert_line"`
	CardNumber   string         `db:"card_number"`
	Parallel     sql.NullString `db:"parallel"`
	Sport        sql.NullString `db:"sport"`
	IsAutograph  bool           `db:"is_autograph"`
	LooseCents   int64          `db:"loose_cents"`
	Grade8Cents  int64          `db:"grade8_cents"`
	Grade9Cents  int64          `db:"grade9_cents"`
	Grade10Cents int64          `db:"grade10_cents"`
	ProductURL   sql.NullString `db:"product_url"`
}

const catalogQuery = `
SELECT year, set_name, insert_line, card_number, parallel, sport, is_autograph,
       loose_cents, grade8_cents, grade9_cents, grade10_cents, product_url
FROM price_catalog
WHERE year = $1 AND lower(set_name) = $2 AND card_number = $3`

func (p *PostgresCatalog) Name() string { return "local-catalog" }

func (p *PostgresCatalog) Quote(ctx context.Context, id domain.CardIdentity, grade domain.GradeInfo) (*domain.PriceQuote, error) {
	var rows []catalogRow
	err := p.db.SelectContext(ctx, &rows, catalogQuery,
		id.Year,
		strings.ToLower(strings.TrimSpace(id.SetName)),
		parse.NormalizeCardNumber(id.CardNumber),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resolve.ErrNoCandidateMatch
		}
		return nil, fmt.Errorf("price catalog query failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, resolve.ErrNoCandidateMatch
	}

	for _, row := range rows {
		candidate := p.identityOf(row)
		if !p.eval.Evaluate(id, candidate).Matched {
			continue
		}
		prices := domain.PriceByTier{
			LooseCents:   row.LooseCents,
			Grade8Cents:  row.Grade8Cents,
			Grade9Cents:  row.Grade9Cents,
			Grade10Cents: row.Grade10Cents,
		}
		value, _, err := resolve.PriceFor(prices, grade)
		if err != nil {
			return nil, err
		}
		return &domain.PriceQuote{
			ValueCents:         value,
			Source:             domain.SourceLocalCatalog,
			SourceURL:          row.ProductURL.String,
			MatchedDescription: candidate.Describe(),
			Confidence:         domain.ConfidenceHigh,
		}, nil
	}
	return nil, resolve.ErrNoCandidateMatch
}

// identityOf converts a catalog row into a candidate identity. The parallel
// column may carry suffixed color naming; it reduces exactly like a parsed
// title so both sides of the match normalize identically.
func (p *PostgresCatalog) identityOf(row catalogRow) domain.CardIdentity {
	parallel := row.Parallel.String
	if parallel != "" && p.catalog != nil {
		parallel = p.catalog.ReduceColor(parallel)
	}
	return domain.CardIdentity{
		Sport:       row.Sport.String,
		Year:        row.Year,
		SetName:     row.SetName,
		InsertLine:  row.InsertLine.String,
		CardNumber:  row.CardNumber,
		Parallel:    parallel,
		IsAutograph: row.IsAutograph,
	}
}
