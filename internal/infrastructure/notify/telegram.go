package notify

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"scan-viewer/internal/domain/port"
)

// MessageSender часть BotAPI, которая нужна для отправки сообщений
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramReporter отправляет ошибки в чат Telegram
type TelegramReporter struct {
	api    MessageSender
	chatID int64
	scanID string
}

// NewTelegramReporter авторизуется в Telegram и создаёт канал ошибок
func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return NewTelegramReporterWithSender(api, chatID), nil
}

// NewTelegramReporterWithSender создаёт канал поверх готового отправителя
func NewTelegramReporterWithSender(api MessageSender, chatID int64) *TelegramReporter {
	return &TelegramReporter{api: api, chatID: chatID}
}

// ForScan добавляет идентификатор скана в текст сообщений
func (r *TelegramReporter) ForScan(scanID string) *TelegramReporter {
	cp := *r
	cp.scanID = scanID
	return &cp
}

func (r *TelegramReporter) Report(ctx context.Context, op string, err error) {
	text := fmt.Sprintf("⚠️ %s failed: %v", op, err)
	if r.scanID != "" {
		text = fmt.Sprintf("⚠️ [%s] %s failed: %v", r.scanID, op, err)
	}

	msg := tgbotapi.NewMessage(r.chatID, text)
	if _, err := r.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

var _ port.ErrorReporter = (*TelegramReporter)(nil)
