package domain

import "time"

// TranslationRequest is one attempt to translate a piece of text. It lives
// for a single pipeline invocation and is never persisted, except inside a
// RetryContext while a correction is pending.
type TranslationRequest struct {
	Text      string
	Source    LanguageCode // empty means not given; resolver maps it to Auto
	Target    LanguageCode
	UserID    int64
	ChatID    int64
	MessageID int
}

// LiveSession binds a chat to a fixed target language. While active, every
// qualifying message in the chat is translated without an explicit command.
type LiveSession struct {
	ChatID    int64
	Target    LanguageCode
	StartedAt time.Time
}

// ThreadKey identifies the bot's error report a correction reply points at.
// Telegram message ids are unique only within a chat.
type ThreadKey struct {
	ChatID    int64
	MessageID int
}

// RetryContext is one failed translation awaiting a source-language
// correction. The request is stored with the target already resolved; the
// source is whatever the user supplies in the correction reply.
type RetryContext struct {
	Key       ThreadKey
	Request   TranslationRequest
	CreatedAt time.Time
}

// UserPreference is a user's default target language.
type UserPreference struct {
	UserID    int64
	Target    LanguageCode
	UpdatedAt time.Time
}
