package service

import (
	"fmt"

	"viola/internal/domain"
	"viola/internal/repository"
)

// Resolver determines the effective language pair for a translation
// request from explicit arguments, the live session target and the user's
// stored default, in that order of precedence.
type Resolver struct {
	prefs repository.PreferenceRepository
}

// NewResolver creates a new resolver
func NewResolver(prefs repository.PreferenceRepository) *Resolver {
	return &Resolver{prefs: prefs}
}

// Resolve returns the (source, target) pair for a request. liveTarget is
// the active live session's target, empty outside live mode. A missing
// source resolves to domain.Auto. When both source and target are explicit
// neither the live session nor the stored default is consulted.
func (r *Resolver) Resolve(req domain.TranslationRequest, liveTarget domain.LanguageCode) (domain.LanguageCode, domain.LanguageCode, error) {
	source := domain.Auto
	if req.Source != "" && req.Source != domain.Auto {
		if !domain.IsSupported(req.Source) {
			return "", "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, req.Source)
		}
		source = req.Source
	}

	var target domain.LanguageCode
	switch {
	case req.Target != "":
		if !domain.IsSupported(req.Target) {
			return "", "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, req.Target)
		}
		target = req.Target
	case liveTarget != "":
		target = liveTarget
	default:
		stored, ok, err := r.prefs.Target(req.UserID)
		if err != nil {
			return "", "", fmt.Errorf("failed to load user preference: %w", err)
		}
		if !ok {
			return "", "", domain.ErrNoTargetLanguage
		}
		target = stored
	}

	return source, target, nil
}
