package repository

import "viola/internal/domain"

// PreferenceRepository defines storage for per-user default target
// languages. The in-memory implementation keeps the bot fully ephemeral;
// the postgres implementation survives restarts.
type PreferenceRepository interface {
	// SetTarget stores or overwrites the user's default target language.
	SetTarget(userID int64, target domain.LanguageCode) error

	// Target returns the user's default target language. The second return
	// is false when the user has never set one.
	Target(userID int64) (domain.LanguageCode, bool, error)
}
