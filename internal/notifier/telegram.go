package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/lshigami/examguard/config"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotConfigured = errors.New("telegram: bot token or chat id missing")
	ErrRejected      = errors.New("telegram: request rejected")
)

// Notifier relays proctoring messages to an administrator chat.
type Notifier interface {
	Enabled() bool
	SendMessage(ctx context.Context, text string) error
	SendPhoto(ctx context.Context, caption, filename string, photo io.Reader) error
}

type telegramNotifier struct {
	bot    *bot.Bot
	chatID string
}

// NewTelegramNotifier builds a Bot API client. A single request is made per
// call; there is no retry.
func NewTelegramNotifier(cfg *config.Config) Notifier {
	n := &telegramNotifier{chatID: cfg.Telegram.AdminChatID}
	if !cfg.Telegram.Enabled() {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN or TELEGRAM_ADMIN_CHAT_ID is not set. Screenshots will not be relayed.")
		return n
	}

	timeout := cfg.Telegram.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opts := []bot.Option{
		bot.WithSkipGetMe(),
		bot.WithHTTPClient(timeout, &http.Client{Timeout: timeout}),
	}
	if serverURL := strings.TrimRight(cfg.Telegram.APIURL, "/"); serverURL != "" {
		opts = append(opts, bot.WithServerURL(serverURL))
	}

	b, err := bot.New(cfg.Telegram.BotToken, opts...)
	if err != nil {
		log.Error().Err(sanitize(err)).Msg("Telegram bot init failed. Screenshots will not be relayed.")
		return n
	}
	n.bot = b
	return n
}

func (n *telegramNotifier) Enabled() bool {
	return n.bot != nil && n.chatID != ""
}

func (n *telegramNotifier) SendMessage(ctx context.Context, text string) error {
	if !n.Enabled() {
		return ErrNotConfigured
	}
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	return wrap("sendMessage", err)
}

func (n *telegramNotifier) SendPhoto(ctx context.Context, caption, filename string, photo io.Reader) error {
	if !n.Enabled() {
		return ErrNotConfigured
	}
	_, err := n.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  n.chatID,
		Photo:   &models.InputFileUpload{Filename: filename, Data: photo},
		Caption: caption,
	})
	return wrap("sendPhoto", err)
}

// wrap maps every bot error onto ErrRejected except transport failures,
// which keep their cause without the token-bearing URL.
func wrap(method string, err error) error {
	if err == nil {
		return nil
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("telegram: %s failed: %w", method, uerr.Err)
	}
	return fmt.Errorf("%w: %s: %v", ErrRejected, method, sanitize(err))
}

func sanitize(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
