package testutil

import (
	"viola/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestRequest creates a translation request with sensible test defaults
func NewTestRequest(text string, source, target domain.LanguageCode) domain.TranslationRequest {
	return domain.TranslationRequest{
		Text:      text,
		Source:    source,
		Target:    target,
		UserID:    123,
		ChatID:    -100,
		MessageID: 42,
	}
}

// NewTestKey creates a thread key for retry store tests
func NewTestKey(chatID int64, messageID int) domain.ThreadKey {
	return domain.ThreadKey{ChatID: chatID, MessageID: messageID}
}
