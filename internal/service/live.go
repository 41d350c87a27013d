package service

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"viola/internal/domain"
)

// LiveRegistry holds the active live-translation session per chat. At most
// one session exists per chat; starting again overwrites the target.
type LiveRegistry struct {
	mu       sync.RWMutex
	sessions map[int64]domain.LiveSession
	logger   *zap.Logger
}

// NewLiveRegistry creates a new live session registry
func NewLiveRegistry(logger *zap.Logger) *LiveRegistry {
	return &LiveRegistry{
		sessions: make(map[int64]domain.LiveSession),
		logger:   logger,
	}
}

// Start activates live translation for a chat. It returns the previous
// target when a session was already active, so callers can report the
// switch.
func (r *LiveRegistry) Start(chatID int64, target domain.LanguageCode) (domain.LanguageCode, bool, error) {
	if !domain.IsSupported(target) {
		return "", false, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, target)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, existed := r.sessions[chatID]
	r.sessions[chatID] = domain.LiveSession{
		ChatID:    chatID,
		Target:    target,
		StartedAt: time.Now(),
	}

	r.logger.Info("Live translation started",
		zap.Int64("chat_id", chatID),
		zap.String("target", string(target)),
		zap.Bool("switched", existed),
	)

	return prev.Target, existed, nil
}

// Stop deactivates live translation for a chat.
func (r *LiveRegistry) Stop(chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[chatID]; !ok {
		return domain.ErrNotActive
	}
	delete(r.sessions, chatID)

	r.logger.Info("Live translation stopped", zap.Int64("chat_id", chatID))
	return nil
}

// Active returns the chat's live session, if any. Pure read.
func (r *LiveRegistry) Active(chatID int64) (domain.LiveSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[chatID]
	return sess, ok
}
