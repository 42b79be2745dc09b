// Package resolve turns a canonical identity+grade into a verified market
// value by walking a ranked chain of price sources. It never estimates: a
// listing either gets a quote backed by real data or a typed reason why not.
package resolve

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/slabwatch/slabwatch/internal/cache"
	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/metrics"
)

// Typed source outcomes. Anything else returned by a source is a
// collaborator failure and is treated as source-unavailable: the chain skips
// to the next source.
var (
	// ErrNoCandidateMatch: the source returned candidates but none passed
	// strict matching.
	ErrNoCandidateMatch = errors.New("no candidate passed strict matching")
	// ErrNoPriceData: a candidate matched but has no usable price at any
	// tier.
	ErrNoPriceData = errors.New("matched candidate has no usable price")
	// ErrSourceSkipped: the source is unpopulated or unconfigured and did
	// not participate.
	ErrSourceSkipped = errors.New("source skipped")
)

// IsNoMatch reports whether err is a strict-matching outcome rather than a
// collaborator failure.
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoCandidateMatch) || errors.Is(err, ErrNoPriceData) || errors.Is(err, ErrSourceSkipped)
}

// Source is one ranked price source.
type Source interface {
	Name() string
	Quote(ctx context.Context, id domain.CardIdentity, grade domain.GradeInfo) (*domain.PriceQuote, error)
}

// Resolver walks the source chain with write-through caching of both
// successes and failures.
type Resolver struct {
	sources []Source
	store   cache.Store
	metrics *metrics.Metrics
}

// New creates a resolver over the given ranked sources.
func New(store cache.Store, m *metrics.Metrics, sources ...Source) *Resolver {
	return &Resolver{sources: sources, store: store, metrics: m}
}

// Resolve tries each source in order and returns the first verified quote.
// Identities missing year, set or card number short-circuit with
// insufficient-identity before any external call.
func (r *Resolver) Resolve(ctx context.Context, id domain.CardIdentity, grade domain.GradeInfo) domain.ResolutionResult {
	if !id.Complete() {
		r.metrics.CountResolution(string(domain.ReasonInsufficientIdentity))
		return domain.ResolutionResult{Identity: id, Grade: grade, Reason: domain.ReasonInsufficientIdentity}
	}

	key := cache.Key(id, grade)
	if r.store != nil {
		if res, ok := r.store.Get(ctx, key); ok {
			r.metrics.CountCache("hit")
			return res
		}
		r.metrics.CountCache("miss")
	}

	var reason domain.ReasonCode
	for _, src := range r.sources {
		start := time.Now()
		quote, err := src.Quote(ctx, id, grade)
		r.metrics.ObserveSourceLatency(src.Name(), time.Since(start))

		if err == nil && quote != nil {
			res := domain.ResolutionResult{Identity: id, Grade: grade, Quote: quote}
			r.put(ctx, key, res)
			r.metrics.CountResolution("resolved")
			log.Debug().
				Str("component", "resolver").
				Str("source", src.Name()).
				Str("identity", id.Describe()).
				Int64("value_cents", quote.ValueCents).
				Msg("quote resolved")
			return res
		}

		switch {
		case errors.Is(err, ErrSourceSkipped):
			// Not counted toward the failure reason.
		case errors.Is(err, ErrNoPriceData):
			reason = mergeReason(reason, domain.ReasonNoPriceData)
		case errors.Is(err, ErrNoCandidateMatch):
			reason = mergeReason(reason, domain.ReasonNoCandidateMatch)
		default:
			// Collaborator failure (network, timeout, malformed response):
			// skip this source, keep walking the chain.
			log.Warn().
				Err(err).
				Str("component", "resolver").
				Str("source", src.Name()).
				Str("identity", id.Describe()).
				Msg("source unavailable")
			reason = mergeReason(reason, domain.ReasonSourceUnavailable)
		}
	}

	if reason == "" {
		reason = domain.ReasonNoCandidateMatch
	}
	res := domain.ResolutionResult{Identity: id, Grade: grade, Reason: reason}
	r.put(ctx, key, res)
	r.metrics.CountResolution(string(reason))
	return res
}

func (r *Resolver) put(ctx context.Context, key string, res domain.ResolutionResult) {
	if r.store != nil {
		r.store.Put(ctx, key, res)
	}
}

// mergeReason keeps the most specific failure: a matched candidate without
// price data beats no match at all, which beats a source that never
// answered.
func mergeReason(current, next domain.ReasonCode) domain.ReasonCode {
	rank := func(r domain.ReasonCode) int {
		switch r {
		case domain.ReasonNoPriceData:
			return 3
		case domain.ReasonNoCandidateMatch:
			return 2
		case domain.ReasonSourceUnavailable:
			return 1
		default:
			return 0
		}
	}
	if rank(next) > rank(current) {
		return next
	}
	return current
}
