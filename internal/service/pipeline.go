package service

import (
	"context"

	"go.uber.org/zap"

	"viola/internal/domain"
	"viola/internal/slang"
	"viola/internal/translate"
)

// Translator is the model seam the pipeline drives. *translate.Invoker
// satisfies it.
type Translator interface {
	Translate(ctx context.Context, text string, source, target domain.LanguageCode) (*translate.Result, error)
}

// Pipeline runs one full translation: inbound slang substitution, the
// model invocation, outbound slang substitution.
type Pipeline struct {
	translator Translator
	slang      *slang.Substituter
	logger     *zap.Logger
}

// NewPipeline creates a new translation pipeline
func NewPipeline(translator Translator, substituter *slang.Substituter, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		translator: translator,
		slang:      substituter,
		logger:     logger,
	}
}

// Run translates text from source (or domain.Auto) into target. Inbound
// substitution needs a known source table, so auto-detect requests skip
// it; outbound substitution always runs against the target table.
func (p *Pipeline) Run(ctx context.Context, text string, source, target domain.LanguageCode) (*translate.Result, error) {
	prepared := text
	if source != domain.Auto {
		prepared = p.slang.Apply(text, source, slang.Inbound)
	}

	result, err := p.translator.Translate(ctx, prepared, source, target)
	if err != nil {
		p.logger.Warn("Translation failed",
			zap.String("source", string(source)),
			zap.String("target", string(target)),
			zap.Error(err),
		)
		return nil, err
	}

	result.Text = p.slang.Apply(result.Text, target, slang.Outbound)
	return result, nil
}
