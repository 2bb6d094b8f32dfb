package models

import (
	"fmt"
	"strconv"
)

// TelegramUpdate is the subset of a Telegram Bot API update the bot reads.
// Pointers distinguish an absent object from a zero one.
type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message"`
}

type TelegramMessage struct {
	MessageID int64         `json:"message_id"`
	From      *TelegramUser `json:"from"`
	Text      *string       `json:"text"`
}

type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// IncomingMessage is one user action as delivered by a transport.
// An empty Text is a valid message.
type IncomingMessage struct {
	SenderID   string `json:"sender_id" validate:"required"`
	SenderName string `json:"sender_name" validate:"required"`
	Text       string `json:"text"`
}

// IncomingMessage extracts the routed fields. It returns ErrTransportAnomaly when
// the update has no message, sender or text.
func (u *TelegramUpdate) IncomingMessage() (IncomingMessage, error) {
	m := u.Message
	switch {
	case m == nil:
		return IncomingMessage{}, fmt.Errorf("%w: update has no message", ErrTransportAnomaly)
	case m.From == nil:
		return IncomingMessage{}, fmt.Errorf("%w: message has no sender", ErrTransportAnomaly)
	case m.Text == nil:
		return IncomingMessage{}, fmt.Errorf("%w: message has no text", ErrTransportAnomaly)
	}

	var senderID string
	if m.From.ID != 0 {
		senderID = strconv.FormatInt(m.From.ID, 10)
	}
	return IncomingMessage{
		SenderID:   senderID,
		SenderName: m.From.FirstName,
		Text:       *m.Text,
	}, nil
}

const FormatMarkdown = "markdown"

// Notification is an outbound message produced by the command router.
type Notification struct {
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
	Format      string `json:"format"`
}

func NewNotification(recipientID, text string) Notification {
	return Notification{
		RecipientID: recipientID,
		Text:        text,
		Format:      FormatMarkdown,
	}
}
