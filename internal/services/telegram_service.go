package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrTelegramNotConfigured is returned when the bot token or chat id is missing.
var ErrTelegramNotConfigured = errors.New("telegram is not configured")

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	baseURL     string
	botToken    string
	adminChatID string
	client      *http.Client
}

// NewTelegramService creates a new TelegramService talking to the Bot API at baseURL.
func NewTelegramService(baseURL, botToken, adminChatID string) *TelegramService {
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	return &TelegramService{
		baseURL:     strings.TrimRight(baseURL, "/"),
		botToken:    botToken,
		adminChatID: adminChatID,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether both the bot token and the admin chat id are set.
func (s *TelegramService) Configured() bool {
	return s.botToken != "" && s.adminChatID != ""
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(ctx context.Context, chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return ErrTelegramNotConfigured
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[Telegram] Unexpected status: %d %s", resp.StatusCode, strings.TrimSpace(string(detail)))
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(ctx context.Context, text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return ErrTelegramNotConfigured
	}
	return s.SendMessage(ctx, s.adminChatID, text)
}

// ContactRequest is a message left through the storefront contact form.
type ContactRequest struct {
	Name    string
	Phone   string
	Message string
	SentAt  time.Time
}

// FormatContact renders the contact request as an HTML message. User input is escaped.
func FormatContact(req ContactRequest) string {
	sentAt := req.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}

	return fmt.Sprintf(`<b>📬 Новая заявка с сайта</b>
<b>👤 Имя:</b> %s
<b>📞 Телефон:</b> %s
<b>💬 Сообщение:</b> %s
<b>⏰ Время:</b> %s`,
		html.EscapeString(req.Name),
		html.EscapeString(req.Phone),
		html.EscapeString(req.Message),
		sentAt.Format("02.01.2006 15:04"),
	)
}

// NotifyContact forwards a contact form submission to the admin chat.
func (s *TelegramService) NotifyContact(ctx context.Context, req ContactRequest) error {
	if !s.Configured() {
		return ErrTelegramNotConfigured
	}
	return s.SendToAdmin(ctx, FormatContact(req))
}
