package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"viola/internal/domain"
	"viola/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// modelCallTimeout bounds a single model invocation. Other chats keep
// being dispatched while one call waits.
const modelCallTimeout = 60 * time.Second

// Handler is the session orchestrator. It owns the live session registry
// and the retry correlation store through injection; no other component
// mutates them.
type Handler struct {
	bot      *tele.Bot
	resolver *service.Resolver
	prefs    *service.PreferenceService
	live     *service.LiveRegistry
	retries  *service.RetryStore
	pipeline *service.Pipeline
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	resolver *service.Resolver,
	prefs *service.PreferenceService,
	live *service.LiveRegistry,
	retries *service.RetryStore,
	pipeline *service.Pipeline,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:      bot,
		resolver: resolver,
		prefs:    prefs,
		live:     live,
		retries:  retries,
		pipeline: pipeline,
		logger:   logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/translate", h.handleTranslate)
	h.bot.Handle("/setlanguage", h.handleSetLanguage)
	h.bot.Handle("/languagecodes", h.handleLanguageCodes)
	h.bot.Handle("/startlive", h.handleStartLive)
	h.bot.Handle("/stoplive", h.handleStopLive)

	// Everything else: correction replies and live translation
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnEdited, h.handleEdited)
}

// textClassification is the dispatch decision for a non-command message.
type textClassification int

const (
	classIgnore textClassification = iota
	classRetry
	classLive
)

// classifyText decides what a non-command message is. A correction reply
// to a pending error report wins over live translation, so a reply like
// "de" is never fed back through the live pipeline. Bot senders never
// trigger live translation.
func classifyText(text string, correction, liveActive, fromBot bool) textClassification {
	switch {
	case text == "" || strings.HasPrefix(text, "/"):
		return classIgnore
	case correction:
		return classRetry
	case liveActive && !fromBot:
		return classLive
	default:
		return classIgnore
	}
}

// handleText dispatches a non-command message per classifyText.
func (h *Handler) handleText(c tele.Context) error {
	m := c.Message()
	if m == nil || m.Chat == nil {
		return nil
	}

	text := strings.TrimSpace(c.Text())

	var rc domain.RetryContext
	var code domain.LanguageCode
	var correction bool
	if m.ReplyTo != nil {
		if parsed, err := domain.ParseCode(text); err == nil {
			key := domain.ThreadKey{ChatID: m.Chat.ID, MessageID: m.ReplyTo.ID}
			// Take is atomic: when replies race, exactly one wins and
			// the rest fall through as ordinary messages.
			if rc, correction = h.retries.Take(key); correction {
				code = parsed
			}
		}
	}

	sess, liveActive := h.live.Active(m.Chat.ID)
	fromBot := m.Sender != nil && m.Sender.IsBot

	switch classifyText(text, correction, liveActive, fromBot) {
	case classRetry:
		return h.retryTranslation(c, rc, code)
	case classLive:
		return h.liveTranslate(c, sess)
	default:
		return nil
	}
}

// handleEdited re-runs a failed translation when the message that failed
// is edited. The edit corrects the text rather than the source language,
// so detection gets a fresh chance.
func (h *Handler) handleEdited(c tele.Context) error {
	m := c.Message()
	if m == nil || m.Chat == nil {
		return nil
	}

	text := strings.TrimSpace(m.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}

	rc, ok := h.retries.TakeByOrigin(domain.ThreadKey{ChatID: m.Chat.ID, MessageID: m.ID})
	if !ok {
		return nil
	}

	req := rc.Request
	req.Text = text

	h.logger.Info("Retrying translation with edited text",
		zap.Int64("chat_id", m.Chat.ID),
		zap.Int("message_id", m.ID),
	)

	go func() {
		ctx, cancel := modelContext()
		defer cancel()

		result, err := h.pipeline.Run(ctx, req.Text, domain.Auto, req.Target)
		if err != nil {
			if domain.IsCorrectable(err) {
				h.postErrorReport(m, req, err)
				return
			}
			h.logger.Error("Edited-message retry failed",
				zap.Int64("chat_id", m.Chat.ID),
				zap.Error(err),
			)
			return
		}

		if result.Source == req.Target {
			h.send(c, "The text is already in the target language.")
			return
		}

		h.send(c, formatTranslation(result.Source, req.Target, result.Text))
	}()
	return nil
}

// postErrorReport replies to the failed message with a correction prompt
// and binds a retry context to that report. The stored request has its
// source cleared; the correction reply supplies it.
func (h *Handler) postErrorReport(m *tele.Message, req domain.TranslationRequest, cause error) error {
	report, err := h.bot.Reply(m, errorReportText(cause))
	if err != nil {
		h.logger.Error("Failed to post error report",
			zap.Int64("chat_id", m.Chat.ID),
			zap.Error(err),
		)
		return err
	}

	req.Source = ""
	h.retries.Put(domain.ThreadKey{ChatID: report.Chat.ID, MessageID: report.ID}, req)
	return nil
}

// errorReportText renders the correction prompt for a model failure.
func errorReportText(cause error) string {
	var reason string
	switch {
	case errors.Is(cause, domain.ErrDetectionFailed):
		reason = "I could not detect the language of that text."
	case errors.Is(cause, domain.ErrUnsupportedPair):
		reason = "The model has no translation path for that language pair."
	default:
		reason = "The translation model failed."
	}
	return reason + "\n\nReply to this message with a source language code (e.g. \"en\") to retry."
}

// send replies from a model goroutine. The handler has already returned
// by then, so errors are logged instead of propagated.
func (h *Handler) send(c tele.Context, what string) {
	if err := c.Reply(what); err != nil {
		h.logger.Error("Failed to send reply",
			zap.Int64("chat_id", c.Chat().ID),
			zap.Error(err),
		)
	}
}

// formatTranslation renders a completed translation for the chat.
func formatTranslation(source, target domain.LanguageCode, text string) string {
	return fmt.Sprintf("Translation (%s -> %s): %s", source, target, text)
}

// modelContext returns the context for one model invocation.
func modelContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), modelCallTimeout)
}
