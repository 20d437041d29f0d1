package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService posts submission notices to the admissions office channel.
// The integration is optional: a nil service or missing token skips sending.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, chatID int64) (*TelegramService, error) {
	if botToken == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram bot token and chat id are required")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramService{bot: bot, chatID: chatID}, nil
}

func (t *TelegramService) NotifySubmission(applicationID, fullName string) error {
	if t == nil || t.bot == nil {
		log.Printf("[tg][skip] telegram not configured, dropping notice for %s", applicationID)
		return nil
	}
	text := fmt.Sprintf("New application submitted\nApplication ID: %s\nCandidate: %s", applicationID, fullName)
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}
