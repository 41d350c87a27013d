package service

import (
	"fmt"

	"go.uber.org/zap"

	"viola/internal/domain"
	"viola/internal/repository"
)

// PreferenceService handles per-user default target languages.
type PreferenceService struct {
	prefs  repository.PreferenceRepository
	logger *zap.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(prefs repository.PreferenceRepository, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{prefs: prefs, logger: logger}
}

// SetDefaultTarget validates and stores the user's default target language.
func (s *PreferenceService) SetDefaultTarget(userID int64, raw string) (domain.LanguageCode, error) {
	code, err := domain.ParseCode(raw)
	if err != nil {
		return "", err
	}

	if err := s.prefs.SetTarget(userID, code); err != nil {
		return "", fmt.Errorf("failed to store preference: %w", err)
	}

	s.logger.Info("Default target language set",
		zap.Int64("user_id", userID),
		zap.String("target", string(code)),
	)
	return code, nil
}

// DefaultTarget returns the user's stored default target language.
func (s *PreferenceService) DefaultTarget(userID int64) (domain.LanguageCode, bool, error) {
	return s.prefs.Target(userID)
}
