package domain

import "errors"

// Validation errors are answered directly and never open a correction thread.
var (
	ErrUnsupportedLanguage = errors.New("unsupported language code")
	ErrNoTargetLanguage    = errors.New("no target language set")
	ErrNotActive           = errors.New("live translation is not active")
)

// Model errors are the only ones a source-language correction can fix,
// so they are the only ones that open a correction thread.
var (
	ErrDetectionFailed = errors.New("could not detect source language")
	ErrModelFailure    = errors.New("translation model failed")
	ErrUnsupportedPair = errors.New("unsupported language pair")
)

// IsCorrectable reports whether a failure should be offered for
// retry-via-reply with a corrected source language.
func IsCorrectable(err error) bool {
	return errors.Is(err, ErrDetectionFailed) ||
		errors.Is(err, ErrModelFailure) ||
		errors.Is(err, ErrUnsupportedPair)
}
