package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"viola/internal/domain"
)

// RetryStore maps the bot's error reports to the requests needed to retry
// them once a user replies with a corrected source language. Entries
// expire after a TTL so sustained failures cannot grow memory without
// bound.
type RetryStore struct {
	mu      sync.Mutex
	entries map[domain.ThreadKey]domain.RetryContext
	origins map[domain.ThreadKey]domain.ThreadKey // failed message -> error report
	ttl     time.Duration
	logger  *zap.Logger
}

// NewRetryStore creates a new retry correlation store
func NewRetryStore(ttl time.Duration, logger *zap.Logger) *RetryStore {
	return &RetryStore{
		entries: make(map[domain.ThreadKey]domain.RetryContext),
		origins: make(map[domain.ThreadKey]domain.ThreadKey),
		ttl:     ttl,
		logger:  logger,
	}
}

// Put binds a failed request to the error report it was announced in.
// A second failure on the same key replaces the previous context; a second
// report for the same failed message displaces the first, so one message
// never has two pending contexts.
func (s *RetryStore) Put(key domain.ThreadKey, req domain.TranslationRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	origin := domain.ThreadKey{ChatID: req.ChatID, MessageID: req.MessageID}
	if old, ok := s.origins[origin]; ok && old != key {
		delete(s.entries, old)
	}

	s.entries[key] = domain.RetryContext{
		Key:       key,
		Request:   req,
		CreatedAt: time.Now(),
	}
	s.origins[origin] = key

	s.logger.Info("Retry context stored",
		zap.Int64("chat_id", key.ChatID),
		zap.Int("message_id", key.MessageID),
	)
}

// Take removes and returns the context for a key. The removal is atomic:
// when concurrent correction replies race, exactly one caller wins and the
// rest see a miss. Expired entries are treated as absent.
func (s *RetryStore) Take(key domain.ThreadKey) (domain.RetryContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rc, ok := s.entries[key]
	if !ok {
		return domain.RetryContext{}, false
	}
	s.remove(key, rc)

	if s.ttl > 0 && time.Since(rc.CreatedAt) > s.ttl {
		return domain.RetryContext{}, false
	}
	return rc, true
}

// TakeByOrigin removes and returns the context whose failed message is
// origin. Editing a failed message retries with the new text, so that
// lookup runs by the message the user owns rather than the bot's report.
func (s *RetryStore) TakeByOrigin(origin domain.ThreadKey) (domain.RetryContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.origins[origin]
	if !ok {
		return domain.RetryContext{}, false
	}
	rc, ok := s.entries[key]
	if !ok {
		delete(s.origins, origin)
		return domain.RetryContext{}, false
	}
	s.remove(key, rc)

	if s.ttl > 0 && time.Since(rc.CreatedAt) > s.ttl {
		return domain.RetryContext{}, false
	}
	return rc, true
}

// remove drops an entry and its origin mapping. Callers hold the lock.
func (s *RetryStore) remove(key domain.ThreadKey, rc domain.RetryContext) {
	delete(s.entries, key)
	origin := domain.ThreadKey{ChatID: rc.Request.ChatID, MessageID: rc.Request.MessageID}
	if s.origins[origin] == key {
		delete(s.origins, origin)
	}
}

// Sweep drops expired entries and returns how many were removed.
func (s *RetryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}

	removed := 0
	now := time.Now()
	for key, rc := range s.entries {
		if now.Sub(rc.CreatedAt) > s.ttl {
			s.remove(key, rc)
			removed++
		}
	}
	return removed
}

// Len returns the number of pending retry contexts.
func (s *RetryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartJanitor sweeps expired contexts periodically until ctx is done.
func (s *RetryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Retry janitor stopped")
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Info("Expired retry contexts removed", zap.Int("count", removed))
			}
		}
	}
}
