package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// IgnoreBots drops messages sent by other bots before they reach any
// handler, so bot output is never fed back into the translation pipeline.
func IgnoreBots() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if sender := c.Sender(); sender != nil && sender.IsBot {
				return nil
			}
			return next(c)
		}
	}
}

// LogUpdates logs every dispatched update with its chat and sender.
func LogUpdates(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			fields := []zap.Field{zap.Int("update_id", c.Update().ID)}
			if chat := c.Chat(); chat != nil {
				fields = append(fields, zap.Int64("chat_id", chat.ID))
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}
			logger.Debug("Update received", fields...)
			return next(c)
		}
	}
}
