// Package telegram sends notifications through the Telegram Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/nguyentranbao-ct/price-bot/internal/config"
	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/pkg/util"
)

var ErrMissingToken = errors.New("telegram bot token is not configured")

type Client interface {
	SendMessage(ctx context.Context, notification models.Notification) error
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

type client struct {
	http *resty.Client
}

func NewClient(conf *config.Config) (Client, error) {
	cfg := conf.Telegram
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	rc := util.NewRestyClient(util.RestyOptions{
		Timeout:    cfg.Timeout,
		RetryCount: 2,
	}).SetBaseURL(fmt.Sprintf("%s/bot%s", cfg.BaseURL, cfg.Token))

	return &client{http: rc}, nil
}

func (c *client) SendMessage(ctx context.Context, n models.Notification) error {
	req := sendMessageRequest{
		ChatID:    n.RecipientID,
		Text:      n.Text,
		ParseMode: parseMode(n.Format),
	}

	var result apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post("/sendMessage")
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	if resp.IsError() || !result.OK {
		return fmt.Errorf("failed to send message: status %d: %s", resp.StatusCode(), result.Description)
	}
	return nil
}

func parseMode(format string) string {
	if format == models.FormatMarkdown {
		return "Markdown"
	}
	return ""
}
