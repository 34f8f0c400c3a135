package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/examguard/config"
	"github.com/lshigami/examguard/internal/notifier"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// TelegramCheck reports whether the Bot API accepts a message with the
// configured credentials.
func TelegramCheck(c *cli.Context) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	n := notifier.NewTelegramNotifier(cfg)
	if !n.Enabled() {
		return errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_ADMIN_CHAT_ID must both be set")
	}

	ctx, cancel := context.WithTimeout(c.Context, 15*time.Second)
	defer cancel()

	text := fmt.Sprintf("✅ Telegram check from exam server at %s", time.Now().UTC().Format("2006-01-02 15:04:05"))
	if err := n.SendMessage(ctx, text); err != nil {
		return fmt.Errorf("telegram rejected the test message: %w", err)
	}
	log.Info().Str("chatID", cfg.Telegram.AdminChatID).Msg("Test message delivered")
	return nil
}
