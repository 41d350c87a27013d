package translate

import (
	"context"

	"go.uber.org/zap"

	"viola/internal/cache"
	"viola/internal/domain"
)

// Invoker is the single entry point the rest of the bot uses to run the
// model. It consults the translation cache for explicit-source requests and
// fills it on success.
type Invoker struct {
	provider Provider
	cache    cache.TranslationCache
	logger   *zap.Logger
}

// NewInvoker creates a new Invoker.
func NewInvoker(provider Provider, c cache.TranslationCache, logger *zap.Logger) *Invoker {
	return &Invoker{
		provider: provider,
		cache:    c,
		logger:   logger,
	}
}

// Translate runs one model invocation. It never retries on its own; a
// failed attempt is surfaced to the caller, who decides whether to open a
// correction thread.
func (i *Invoker) Translate(ctx context.Context, text string, source, target domain.LanguageCode) (*Result, error) {
	if source != domain.Auto {
		key := cache.Key(source, target, text)
		if cached, ok := i.cache.Get(key); ok {
			i.logger.Debug("Translation cache hit",
				zap.String("source", string(source)),
				zap.String("target", string(target)),
			)
			return &Result{Text: cached, Source: source}, nil
		}
	}

	result, err := i.provider.Infer(ctx, text, source, target)
	if err != nil {
		return nil, err
	}

	// The detected source makes the result cacheable even for auto requests.
	if err := i.cache.Set(cache.Key(result.Source, target, text), result.Text); err != nil {
		i.logger.Warn("Failed to cache translation", zap.Error(err))
	}

	return result, nil
}
