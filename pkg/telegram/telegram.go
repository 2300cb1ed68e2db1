package telegram

import (
	"context"
	"time"

	"golang-backtest/config"
	"golang-backtest/pkg/logger"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Notifier mengirim ringkasan hasil backtest ke satu chat Telegram,
// dengan rate limiter global supaya tidak kena flood limit bot API.
type Notifier struct {
	cfg     *config.TelegramConfig
	log     *logger.Logger
	bot     *telebot.Bot
	limiter *rate.Limiter
}

func NewNotifier(cfg *config.TelegramConfig, log *logger.Logger) (*Notifier, error) {
	pref := telebot.Settings{
		Token:   cfg.BotToken,
		Offline: cfg.BotToken == "",
		Poller:  &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			log.Error("Telegram bot error", logger.ErrorField(err))
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Notifier{
		cfg:     cfg,
		log:     log,
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxRequestPerSecond), cfg.MaxRequestPerSecond),
	}, nil
}

// SendMessage mengirim pesan teks ke chat yang dikonfigurasi.
func (n *Notifier) SendMessage(ctx context.Context, message string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := n.bot.Send(&telebot.Chat{ID: n.cfg.ChatID}, message, telebot.ModeMarkdown)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to send telegram message", logger.ErrorField(err))
		return err
	}
	return nil
}
