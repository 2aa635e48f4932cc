package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/invoicedash/internal/config"
	"github.com/set-night/invoicedash/internal/domain"
)

// Sender is implemented by *bot.Bot.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// NewBot creates a send-only bot client. The token is not checked against
// the Bot API until the first message is sent.
func NewBot(token string) (*bot.Bot, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return b, nil
}

type LogType string

const (
	LogTypeError    LogType = "error"
	LogTypeInvoices LogType = "invoices"
)

// TelegramLogger posts invoice activity to an admin chat.
type TelegramLogger struct {
	sender Sender
	cfg    *config.Config
	now    func() time.Time
}

func NewTelegramLogger(sender Sender, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{sender: sender, cfg: cfg, now: time.Now}
}

func (l *TelegramLogger) Log(ctx context.Context, logType LogType, message string) {
	if l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.getTopicID(logType)
	if topicID == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.NotifyTimeout)
	defer cancel()

	_, err := l.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            truncate(message),
		ParseMode:       models.ParseModeMarkdownV1,
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) InvoiceCreated(ctx context.Context, id string, fields domain.InvoiceFields, date string) {
	msg := fmt.Sprintf("🧾 *Invoice Created*\n\n*ID:* %s\n*Customer:* %s\n*Amount:* $%s\n*Status:* %s\n*Date:* %s",
		inlineCode(id), inlineCode(fields.CustomerID), fields.Amount.StringFixed(2), fields.Status, date)
	l.Log(ctx, LogTypeInvoices, msg)
}

func (l *TelegramLogger) InvoiceUpdated(ctx context.Context, id string, fields domain.InvoiceFields) {
	msg := fmt.Sprintf("✏️ *Invoice Updated*\n\n*ID:* %s\n*Customer:* %s\n*Amount:* $%s\n*Status:* %s",
		inlineCode(id), inlineCode(fields.CustomerID), fields.Amount.StringFixed(2), fields.Status)
	l.Log(ctx, LogTypeInvoices, msg)
}

func (l *TelegramLogger) InvoiceDeleted(ctx context.Context, id string) {
	msg := fmt.Sprintf("🗑 *Invoice Deleted*\n\n*ID:* %s", inlineCode(id))
	l.Log(ctx, LogTypeInvoices, msg)
}

func (l *TelegramLogger) LogError(ctx context.Context, err error, op string) {
	msg := fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* %s\n*Time:* %s",
		op, inlineCode(err.Error()), l.now().Format("2006-01-02 15:04:05"))
	l.Log(ctx, LogTypeError, msg)
}

func (l *TelegramLogger) getTopicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypeInvoices:
		return l.cfg.LogTopicInvoices
	default:
		return 0
	}
}
