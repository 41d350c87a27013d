package handler

import (
	"errors"
	"fmt"
	"strings"

	"viola/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStartLive handles the /startlive command
func (h *Handler) handleStartLive(c tele.Context) error {
	chatID := c.Chat().ID
	raw := strings.TrimSpace(c.Message().Payload)

	if raw == "" {
		return c.Reply("Usage: /startlive <target code>, e.g. /startlive fr")
	}

	code, err := domain.ParseCode(raw)
	if err != nil {
		return c.Reply("Unsupported language code. Use /languagecodes to see what I speak.")
	}

	prev, switched, err := h.live.Start(chatID, code)
	if err != nil {
		return c.Reply("Unsupported language code. Use /languagecodes to see what I speak.")
	}

	if switched {
		return c.Send(fmt.Sprintf(
			"Live translation switched from %s to %s.", prev.Name(), code.Name()))
	}
	return c.Send(fmt.Sprintf(
		"Live translation activated. Messages will be translated to %s.", code.Name()))
}

// handleStopLive handles the /stoplive command
func (h *Handler) handleStopLive(c tele.Context) error {
	chatID := c.Chat().ID

	if err := h.live.Stop(chatID); err != nil {
		if errors.Is(err, domain.ErrNotActive) {
			return c.Send("Live translation is not active in this chat.")
		}
		return err
	}
	return c.Send("Live translation deactivated.")
}

// liveTranslate runs the implicit pipeline for a message in a live chat.
// The source is always auto-detected; failures open a correction thread
// exactly like manual ones. The model call runs in a goroutine so one
// slow chat never stalls the others.
func (h *Handler) liveTranslate(c tele.Context, sess domain.LiveSession) error {
	m := c.Message()

	req := domain.TranslationRequest{
		Text:      m.Text,
		Target:    sess.Target,
		UserID:    c.Sender().ID,
		ChatID:    m.Chat.ID,
		MessageID: m.ID,
	}

	go func() {
		ctx, cancel := modelContext()
		defer cancel()

		result, err := h.pipeline.Run(ctx, m.Text, domain.Auto, sess.Target)
		if err != nil {
			if domain.IsCorrectable(err) {
				h.postErrorReport(m, req, err)
				return
			}
			h.logger.Error("Live translation failed",
				zap.Int64("chat_id", m.Chat.ID),
				zap.Error(err),
			)
			return
		}

		// Already in the target language: stay quiet in live mode.
		if result.Source == sess.Target {
			return
		}

		h.send(c, formatTranslation(result.Source, sess.Target, result.Text))
	}()
	return nil
}

// prepareRetry builds the corrected request for a consumed retry context.
// A reply naming the target language itself cannot fix anything, so the
// context is put back instead of burned; the user can still correct.
func (h *Handler) prepareRetry(rc domain.RetryContext, source domain.LanguageCode) (domain.TranslationRequest, bool) {
	if source == rc.Request.Target {
		h.retries.Put(rc.Key, rc.Request)
		return domain.TranslationRequest{}, false
	}
	req := rc.Request
	req.Source = source
	return req, true
}

// retryTranslation re-runs a stored request with the corrected source
// language, bypassing detection. On success the context is gone (Take
// removed it); on another model failure a fresh context is bound to the
// new report.
func (h *Handler) retryTranslation(c tele.Context, rc domain.RetryContext, source domain.LanguageCode) error {
	req, ok := h.prepareRetry(rc, source)
	if !ok {
		return c.Reply("The text is already in the target language.")
	}

	h.logger.Info("Retrying translation with corrected source",
		zap.Int64("chat_id", rc.Key.ChatID),
		zap.Int("message_id", rc.Key.MessageID),
		zap.String("source", string(source)),
	)

	go func() {
		ctx, cancel := modelContext()
		defer cancel()

		result, err := h.pipeline.Run(ctx, req.Text, source, req.Target)
		if err != nil {
			if domain.IsCorrectable(err) {
				h.postErrorReport(c.Message(), req, err)
				return
			}
			h.logger.Error("Retry translation failed",
				zap.Int64("chat_id", rc.Key.ChatID),
				zap.Error(err),
			)
			h.send(c, "Something went wrong. Try again later.")
			return
		}

		h.send(c, formatTranslation(source, req.Target, result.Text))
	}()
	return nil
}
