package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/resolve"
)

// Guarded wraps an external source with a minimum inter-call spacing and a
// circuit breaker. Strict-matching outcomes pass through untouched and do
// not count as failures; only collaborator errors trip the breaker.
type Guarded struct {
	inner   resolve.Source
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

type guardedOutcome struct {
	quote *domain.PriceQuote
	err   error
}

// Guard wraps src with spacing between calls and a breaker that opens after
// five consecutive collaborator failures.
func Guard(src resolve.Source, minInterval time.Duration) *Guarded {
	settings := gobreaker.Settings{
		Name:    src.Name(),
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("component", "sources").
				Str("source", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	}
	return &Guarded{
		inner:   src,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (g *Guarded) Name() string { return g.inner.Name() }

func (g *Guarded) Quote(ctx context.Context, id domain.CardIdentity, grade domain.GradeInfo) (*domain.PriceQuote, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	out, err := g.breaker.Execute(func() (interface{}, error) {
		quote, err := g.inner.Quote(ctx, id, grade)
		if err != nil && !resolve.IsNoMatch(err) {
			return nil, err
		}
		return guardedOutcome{quote: quote, err: err}, nil
	})
	if err != nil {
		// Collaborator failure or open breaker; the resolver treats either
		// as source-unavailable and walks on.
		return nil, err
	}

	outcome := out.(guardedOutcome)
	return outcome.quote, outcome.err
}
