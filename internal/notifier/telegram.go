package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Notifier pushes alerts about completed analysis runs.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	client   *resty.Client
	log      zerolog.Logger
}

func NewTelegramNotifier(botToken, chatID string, log zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		client:   resty.New().SetTimeout(30 * time.Second),
		log:      log.With().Str("component", "notifier").Logger(),
	}
}

// Send posts one message to the configured chat with exponential backoff.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)

	const maxRetries = 3
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			t.log.Warn().Err(lastErr).Int("attempt", attempt).Dur("backoff", backoff).Msg("telegram send retry")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := t.client.R().
			SetContext(ctx).
			SetBody(map[string]string{
				"chat_id":    t.chatID,
				"text":       text,
				"parse_mode": "HTML",
			}).
			Post(apiURL)
		if err != nil {
			lastErr = fmt.Errorf("send message: %w", err)
			continue
		}
		if resp.IsError() {
			lastErr = fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode(), resp.String())
			continue
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// NoopNotifier is used when Telegram is not configured.
type NoopNotifier struct{}

func (NoopNotifier) Send(_ context.Context, _ string) error { return nil }
