// Package scan wires the full per-listing pipeline: signal collection,
// reconciliation, price resolution and deal scoring, plus the bounded
// concurrency for scanning a batch of listings.
package scan

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/metrics"
	"github.com/slabwatch/slabwatch/internal/parse"
	"github.com/slabwatch/slabwatch/internal/reconcile"
	"github.com/slabwatch/slabwatch/internal/refcatalog"
	"github.com/slabwatch/slabwatch/internal/resolve"
	"github.com/slabwatch/slabwatch/internal/score"
)

// CertificateClient is the collaborator client for grading-authority
// certificate lookups.
type CertificateClient interface {
	Lookup(ctx context.Context, certNumber string) (*domain.CertificateRecord, error)
}

// OCRClient extracts a certificate number from a listing image. Secondary
// fallback used only when no certificate number was supplied directly.
type OCRClient interface {
	ExtractCertNumber(ctx context.Context, imageURL string) (string, error)
}

// Notifier delivers scored deals above the threshold.
type Notifier interface {
	NotifyDeal(ctx context.Context, deal domain.DealScoreResult, listing domain.Listing) error
}

// Config bounds the pipeline.
type Config struct {
	BatchSize     int // concurrent listings per batch
	DealThreshold int // minimum score that counts as a deal
}

// DefaultConfig returns the production pipeline bounds.
func DefaultConfig() Config {
	return Config{BatchSize: 10, DealThreshold: 30}
}

// Pipeline is the per-listing resolution and scoring pipeline. Safe for
// concurrent use; the resolution cache is the only shared state between
// in-flight listings.
type Pipeline struct {
	catalog  *refcatalog.Catalog
	resolver *resolve.Resolver
	certs    CertificateClient
	ocr      OCRClient
	notifier Notifier
	metrics  *metrics.Metrics
	cfg      Config
	now      func() time.Time
}

// New assembles a pipeline. certs, ocr and notifier may be nil; the
// corresponding signals and side effects are skipped.
func New(catalog *refcatalog.Catalog, resolver *resolve.Resolver, certs CertificateClient, ocr OCRClient, notifier Notifier, m *metrics.Metrics, cfg Config) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	return &Pipeline{
		catalog:  catalog,
		resolver: resolver,
		certs:    certs,
		ocr:      ocr,
		notifier: notifier,
		metrics:  m,
		cfg:      cfg,
		now:      time.Now,
	}
}

// ResolveAndScore runs the full pipeline for one listing. It returns an
// error only on cancellation; every other failure mode lands in the
// result's resolution reason.
func (p *Pipeline) ResolveAndScore(ctx context.Context, listing domain.Listing, hints domain.IdentityHints) (domain.DealScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.DealScoreResult{}, err
	}

	signals := reconcile.Signals{TitleParse: parse.Title(listing.Title, p.catalog)}
	grade := p.collectSignals(ctx, listing, &signals)

	identity, confidence := reconcile.Reconcile(signals)
	if identity.Sport == "" {
		identity.Sport = hints.Sport
	}

	if err := ctx.Err(); err != nil {
		// A canceled scan cycle must never persist a partially-resolved
		// identity as a scored deal.
		return domain.DealScoreResult{}, err
	}

	res := p.resolver.Resolve(ctx, identity, grade)

	var dealScore int
	if res.Resolved() {
		dealScore = score.Deal(listing.PriceCents, res.Quote, auctionOf(listing), sellerOf(listing), listing.ShippingCents, p.now())
	}
	p.metrics.ObserveScore(dealScore, p.cfg.DealThreshold)

	result := domain.DealScoreResult{
		ID:         uuid.NewString(),
		ListingID:  listing.ItemID,
		Score:      dealScore,
		Confidence: confidence,
		Resolution: res,
	}

	evt := log.Debug()
	if dealScore >= p.cfg.DealThreshold {
		evt = log.Info()
	}
	evt.Str("component", "scan").
		Str("listing", listing.ItemID).
		Str("identity", identity.Describe()).
		Str("reason", string(res.Reason)).
		Int("score", dealScore).
		Msg("listing scored")

	if dealScore >= p.cfg.DealThreshold && p.notifier != nil && ctx.Err() == nil {
		if err := p.notifier.NotifyDeal(ctx, result, listing); err != nil {
			log.Warn().Err(err).Str("component", "scan").Str("listing", listing.ItemID).Msg("deal notification failed")
		}
	}
	return result, nil
}

// collectSignals gathers the certificate, aspect and OCR signals and the
// best available grade. Collaborator failures degrade to an absent signal.
func (p *Pipeline) collectSignals(ctx context.Context, listing domain.Listing, signals *reconcile.Signals) domain.GradeInfo {
	grade := parse.GradeFromTitle(listing.Title)

	if len(listing.StructuredAspects) > 0 {
		aspectID := parse.FromAspects(listing.StructuredAspects, p.catalog)
		if aspectID != (domain.CardIdentity{}) {
			signals.SellerAspects = &aspectID
		}
		if g := parse.GradeFromAspects(listing.StructuredAspects); g.Graded() {
			grade = g
		}
	}

	lookup := func(certNumber string) *domain.CertificateRecord {
		rec, err := p.certs.Lookup(ctx, certNumber)
		if err != nil {
			log.Warn().Err(err).Str("component", "scan").Str("cert", certNumber).Msg("certificate lookup failed")
			return nil
		}
		return rec
	}

	if p.certs != nil && listing.CertificateNumber != "" {
		if rec := lookup(listing.CertificateNumber); rec != nil {
			id := parse.FromCertificate(*rec, p.catalog)
			signals.Certificate = &id
			grade = domain.GradeInfo{Authority: rec.Authority, NumericGrade: rec.NumericGrade}
		}
	} else if p.certs != nil && p.ocr != nil && listing.ImageURL != "" && !signals.TitleParse.Complete() {
		certNumber, err := p.ocr.ExtractCertNumber(ctx, listing.ImageURL)
		if err != nil || certNumber == "" {
			if err != nil {
				log.Debug().Err(err).Str("component", "scan").Str("listing", listing.ItemID).Msg("ocr extraction failed")
			}
			return grade
		}
		if rec := lookup(certNumber); rec != nil {
			id := parse.FromCertificate(*rec, p.catalog)
			signals.OCRCertificate = &id
			if !grade.Graded() {
				grade = domain.GradeInfo{Authority: rec.Authority, NumericGrade: rec.NumericGrade}
			}
		}
	}
	return grade
}

// ScanBatch scores a batch of listings concurrently, bounded by the
// configured batch size. Canceled listings are dropped from the output.
func (p *Pipeline) ScanBatch(ctx context.Context, listings []domain.Listing, hints domain.IdentityHints) []domain.DealScoreResult {
	type slot struct {
		result domain.DealScoreResult
		ok     bool
	}
	slots := make([]slot, len(listings))
	sem := make(chan struct{}, p.cfg.BatchSize)
	var wg sync.WaitGroup

	for i, listing := range listings {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, listing domain.Listing) {
			defer wg.Done()
			defer func() { <-sem }()
			result, err := p.ResolveAndScore(ctx, listing, hints)
			if err != nil {
				return
			}
			slots[i] = slot{result: result, ok: true}
		}(i, listing)
	}
	wg.Wait()

	results := make([]domain.DealScoreResult, 0, len(listings))
	for _, s := range slots {
		if s.ok {
			results = append(results, s.result)
		}
	}
	return results
}
