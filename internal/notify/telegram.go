package notify

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/corviu/corviu-go/internal/config"
)

// TelegramNotifier sends change notifications to a Telegram chat.
// The bot API is initialised lazily on first use because construction
// performs a network round trip.
type TelegramNotifier struct {
	cfg *config.TelegramNotifyConfig

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

// NewTelegramNotifier creates a TelegramNotifier from its config.
func NewTelegramNotifier(cfg *config.TelegramNotifyConfig) *TelegramNotifier {
	return &TelegramNotifier{cfg: cfg}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

func (t *TelegramNotifier) Notify(_ context.Context, text string) error {
	bot, err := t.ensureBot()
	if err != nil {
		return err
	}
	chatID, err := strconv.ParseInt(t.cfg.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: invalid chat id %q: %w", t.cfg.ChatID, err)
	}
	_, err = bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (t *TelegramNotifier) ensureBot() (*tgbotapi.BotAPI, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bot != nil {
		return t.bot, nil
	}
	if t.cfg.Token == "" {
		return nil, fmt.Errorf("telegram: bot token not configured")
	}
	bot, err := tgbotapi.NewBotAPI(t.cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram: connect bot: %w", err)
	}
	t.bot = bot
	return bot, nil
}
