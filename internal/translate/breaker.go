package translate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"viola/internal/domain"
)

// BreakerProvider guards a Provider with a circuit breaker so a failing
// model endpoint does not get hammered by every incoming message.
type BreakerProvider struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps a provider with a circuit breaker. Validation
// outcomes like detection failures do not trip the breaker; only transport
// and model failures count.
func NewBreakerProvider(provider Provider, logger *zap.Logger) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:    "translation-model",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// A confused model is not an unhealthy one.
			return errors.Is(err, domain.ErrDetectionFailed) ||
				errors.Is(err, domain.ErrUnsupportedPair)
		},
	}

	return &BreakerProvider{
		provider: provider,
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

// Infer implements Provider.
func (p *BreakerProvider) Infer(ctx context.Context, text string, source, target domain.LanguageCode) (*Result, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.provider.Infer(ctx, text, source, target)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", domain.ErrModelFailure, err)
		}
		return nil, err
	}
	return result.(*Result), nil
}
