// Package translate wraps the external neural translation model behind a
// single seam with a uniform failure signal.
package translate

import (
	"context"

	"viola/internal/domain"
)

// Result is a successful model invocation.
type Result struct {
	// Text is the translated text.
	Text string
	// Source is the source language, detected by the model when the
	// request passed domain.Auto.
	Source domain.LanguageCode
}

// Provider is the interface to the pretrained translation model.
type Provider interface {
	// Infer translates text into target. A source of domain.Auto asks the
	// model to detect the source language first. Failures map onto
	// domain.ErrDetectionFailed, domain.ErrModelFailure and
	// domain.ErrUnsupportedPair.
	Infer(ctx context.Context, text string, source, target domain.LanguageCode) (*Result, error)
}
