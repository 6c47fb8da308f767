package service

import (
	"github.com/rs/zerolog"
	"github.com/soulgarden/futures-bot/conf"
	tb "gopkg.in/tucnak/telebot.v2"
)

// Telegram announces placed and cancelled orders to the configured chat.
// The process performs one operation and exits, so sends are synchronous;
// a delivery failure is logged and otherwise ignored.
type Telegram struct {
	cfg    *conf.Bot
	logger *zerolog.Logger
	bot    *tb.Bot
}

func NewTelegram(cfg *conf.Bot, bot *tb.Bot, logger *zerolog.Logger) *Telegram {
	return &Telegram{cfg: cfg, logger: logger, bot: bot}
}

func (s *Telegram) SendSync(msg string) {
	_, err := s.bot.Send(&tb.Chat{ID: s.cfg.Telegram.ChatID}, msg)
	if err != nil {
		s.logger.Err(err).Str("msg", msg).Msg("send message")
	}
}
