package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"viola/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// parseTranslateArgs splits a /translate payload into optional language
// codes and the text. Two forms are accepted:
//
//	/translate de:en guten Morgen   (explicit pair, either side optional)
//	/translate de en guten Morgen   (bare leading codes, source then target)
//
// Bare tokens are consumed as codes only while they parse as supported
// codes, so ordinary text is never misread. The pair form is strict: a
// code-shaped side that is not a supported code is an error, not text,
// while prose containing a colon ("warning: do not touch") falls through
// as text.
func parseTranslateArgs(payload string) (domain.LanguageCode, domain.LanguageCode, string, error) {
	rest := strings.TrimSpace(payload)
	if rest == "" {
		return "", "", "", nil
	}

	head, tail, _ := strings.Cut(rest, " ")
	if rawSource, rawTarget, found := strings.Cut(head, ":"); found &&
		looksLikeCode(rawSource) && looksLikeCode(rawTarget) {
		var source, target domain.LanguageCode
		var err error
		if rawSource != "" && !strings.EqualFold(rawSource, string(domain.Auto)) {
			if source, err = domain.ParseCode(rawSource); err != nil {
				return "", "", "", err
			}
		}
		if rawTarget != "" {
			if target, err = domain.ParseCode(rawTarget); err != nil {
				return "", "", "", err
			}
		}
		return source, target, strings.TrimSpace(tail), nil
	}

	var codes []domain.LanguageCode
	for len(codes) < 2 {
		head, tail, _ = strings.Cut(rest, " ")
		code, err := domain.ParseCode(head)
		if err != nil {
			break
		}
		codes = append(codes, code)
		rest = strings.TrimSpace(tail)
		if rest == "" {
			break
		}
	}

	switch len(codes) {
	case 2:
		return codes[0], codes[1], rest, nil
	case 1:
		return codes[0], "", rest, nil
	default:
		return "", "", rest, nil
	}
}

// looksLikeCode reports whether a pair-form side is shaped like a language
// code: empty, "auto", or two to three letters.
func looksLikeCode(s string) bool {
	if s == "" || strings.EqualFold(s, string(domain.Auto)) {
		return true
	}
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// handleTranslate handles the /translate command. Validation runs inline;
// the model call is dispatched to a goroutine so a slow translation never
// stalls other chats.
func (h *Handler) handleTranslate(c tele.Context) error {
	m := c.Message()
	userID := c.Sender().ID

	source, target, text, err := parseTranslateArgs(m.Payload)
	if err != nil {
		return c.Reply("Unsupported language code. Use /languagecodes to see what I speak.")
	}

	// Invoked as a reply with no text: translate the replied-to message.
	if text == "" && m.ReplyTo != nil {
		text = m.ReplyTo.Text
	}
	if text == "" {
		return c.Reply("Give me text to translate, or reply to a message with /translate.")
	}

	req := domain.TranslationRequest{
		Text:      text,
		Source:    source,
		Target:    target,
		UserID:    userID,
		ChatID:    m.Chat.ID,
		MessageID: m.ID,
	}

	resolvedSource, resolvedTarget, err := h.resolver.Resolve(req, "")
	if err != nil {
		return h.replyValidationError(c, err)
	}

	if resolvedSource != domain.Auto && resolvedSource == resolvedTarget {
		return c.Reply("The text is already in the target language.")
	}

	go h.runManualTranslation(c, req, resolvedSource, resolvedTarget)
	return nil
}

// runManualTranslation performs the model-bound part of /translate.
func (h *Handler) runManualTranslation(c tele.Context, req domain.TranslationRequest, source, target domain.LanguageCode) {
	ctx, cancel := modelContext()
	defer cancel()

	result, err := h.pipeline.Run(ctx, req.Text, source, target)
	if err != nil {
		if domain.IsCorrectable(err) {
			req.Target = target
			h.postErrorReport(c.Message(), req, err)
			return
		}
		h.logger.Error("Manual translation failed",
			zap.Int64("user_id", req.UserID),
			zap.Error(err),
		)
		h.send(c, "Something went wrong. Try again later.")
		return
	}

	if result.Source == target {
		h.send(c, "The text is already in the target language.")
		return
	}

	reply := formatTranslation(result.Source, target, result.Text)
	if source == domain.Auto {
		reply = fmt.Sprintf("Detected source language: %s\n%s", result.Source, reply)
	}
	h.send(c, reply)
}

// handleSetLanguage handles the /setlanguage command
func (h *Handler) handleSetLanguage(c tele.Context) error {
	userID := c.Sender().ID
	raw := strings.TrimSpace(c.Message().Payload)

	if raw == "" {
		return c.Reply("Usage: /setlanguage <code>, e.g. /setlanguage es")
	}

	code, err := h.prefs.SetDefaultTarget(userID, raw)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedLanguage) {
			return c.Reply("Unsupported language code. Use /languagecodes to see what I speak.")
		}
		h.logger.Error("Failed to set default target",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Reply("Something went wrong. Try again later.")
	}

	return c.Reply(fmt.Sprintf("Default target language set to %s (%s).", code.Name(), code))
}

// handleLanguageCodes handles the /languagecodes command
func (h *Handler) handleLanguageCodes(c tele.Context) error {
	var b strings.Builder
	b.WriteString("Supported language codes:\n")
	for _, code := range domain.SupportedCodes() {
		fmt.Fprintf(&b, "`%s`: %s\n", code, code.Name())
	}
	return c.Reply(b.String(), tele.ModeMarkdown)
}

// replyValidationError answers resolver failures directly; they never open
// a correction thread.
func (h *Handler) replyValidationError(c tele.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnsupportedLanguage):
		return c.Reply("Unsupported language code. Use /languagecodes to see what I speak.")
	case errors.Is(err, domain.ErrNoTargetLanguage):
		return c.Reply("Set a default target with /setlanguage <code>, or specify one in the command.")
	default:
		h.logger.Error("Failed to resolve languages", zap.Error(err))
		return c.Reply("Something went wrong. Try again later.")
	}
}
