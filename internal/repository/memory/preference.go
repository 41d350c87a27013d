package memory

import (
	"sync"
	"time"

	"viola/internal/domain"
)

// PreferenceRepo is an in-memory repository.PreferenceRepository. All
// entries are lost on restart, which matches the bot's documented
// no-persistence guarantee.
type PreferenceRepo struct {
	mu    sync.RWMutex
	prefs map[int64]domain.UserPreference
}

// NewPreferenceRepo creates a new in-memory preference repository
func NewPreferenceRepo() *PreferenceRepo {
	return &PreferenceRepo{prefs: make(map[int64]domain.UserPreference)}
}

// SetTarget stores or overwrites the user's default target language
func (r *PreferenceRepo) SetTarget(userID int64, target domain.LanguageCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs[userID] = domain.UserPreference{
		UserID:    userID,
		Target:    target,
		UpdatedAt: time.Now(),
	}
	return nil
}

// Target returns the user's default target language
func (r *PreferenceRepo) Target(userID int64) (domain.LanguageCode, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pref, ok := r.prefs[userID]
	if !ok {
		return "", false, nil
	}
	return pref.Target, true, nil
}
