package translate

import (
	"context"
	"testing"
	"time"

	"viola/internal/cache"
	"viola/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubProvider is a canned Provider for invoker tests.
type stubProvider struct {
	result *Result
	err    error
	calls  int
}

func (s *stubProvider) Infer(ctx context.Context, text string, source, target domain.LanguageCode) (*Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestInvoker_Translate_CachesExplicitSource(t *testing.T) {
	provider := &stubProvider{result: &Result{Text: "hola", Source: "en"}}
	invoker := NewInvoker(provider, cache.NewMemory(time.Hour), zap.NewNop())

	first, err := invoker.Translate(context.Background(), "hello", "en", "es")
	assert.NoError(t, err)
	assert.Equal(t, "hola", first.Text)
	assert.Equal(t, 1, provider.calls)

	// Second identical request is served from the cache.
	second, err := invoker.Translate(context.Background(), "hello", "en", "es")
	assert.NoError(t, err)
	assert.Equal(t, "hola", second.Text)
	assert.Equal(t, domain.LanguageCode("en"), second.Source)
	assert.Equal(t, 1, provider.calls)
}

func TestInvoker_Translate_AutoAlwaysHitsModel(t *testing.T) {
	provider := &stubProvider{result: &Result{Text: "hola", Source: "en"}}
	invoker := NewInvoker(provider, cache.NewMemory(time.Hour), zap.NewNop())

	_, err := invoker.Translate(context.Background(), "hello", domain.Auto, "es")
	assert.NoError(t, err)
	assert.Equal(t, 1, provider.calls)

	// Auto requests bypass the lookup but fill the cache under the
	// detected source, so an explicit follow-up is a hit.
	result, err := invoker.Translate(context.Background(), "hello", "en", "es")
	assert.NoError(t, err)
	assert.Equal(t, "hola", result.Text)
	assert.Equal(t, 1, provider.calls)
}

func TestInvoker_Translate_ErrorNotCached(t *testing.T) {
	provider := &stubProvider{err: domain.ErrModelFailure}
	invoker := NewInvoker(provider, cache.NewMemory(time.Hour), zap.NewNop())

	_, err := invoker.Translate(context.Background(), "hello", "en", "es")
	assert.ErrorIs(t, err, domain.ErrModelFailure)

	_, err = invoker.Translate(context.Background(), "hello", "en", "es")
	assert.ErrorIs(t, err, domain.ErrModelFailure)
	assert.Equal(t, 2, provider.calls)
}
