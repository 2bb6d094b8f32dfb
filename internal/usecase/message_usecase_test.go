package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/fetcher"
	"github.com/nguyentranbao-ct/price-bot/internal/retailer"
)

type stubCommands struct {
	notifications []models.Notification
	err           error
}

func (s stubCommands) HandleMessage(context.Context, models.IncomingMessage) ([]models.Notification, error) {
	return s.notifications, s.err
}

func (s stubCommands) Inspect(context.Context, string) (Snapshot, error) {
	return Snapshot{}, nil
}

type recordingSender struct {
	sent []models.Notification
	err  error
}

func (r *recordingSender) SendMessage(_ context.Context, n models.Notification) error {
	r.sent = append(r.sent, n)
	return r.err
}

func TestProcessMessage(t *testing.T) {
	t.Parallel()
	msg := models.IncomingMessage{SenderID: "7", SenderName: "Ravi", Text: "/add"}
	first := models.NewNotification("7", addedText)
	second := models.NewNotification("7", welcomeText)

	t.Run("sends in order", func(t *testing.T) {
		sender := &recordingSender{}
		uc := NewMessageUsecase(stubCommands{notifications: []models.Notification{first, second}}, sender)

		require.NoError(t, uc.ProcessMessage(context.Background(), msg))
		assert.Equal(t, []models.Notification{first, second}, sender.sent)
	})

	t.Run("handler error still delivers the error notification", func(t *testing.T) {
		errBoom := errors.New("boom")
		generic := models.NewNotification("7", botErrorText)
		sender := &recordingSender{}
		uc := NewMessageUsecase(stubCommands{notifications: []models.Notification{generic}, err: errBoom}, sender)

		err := uc.ProcessMessage(context.Background(), msg)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, []models.Notification{generic}, sender.sent)
	})

	t.Run("send failure", func(t *testing.T) {
		errSend := errors.New("telegram down")
		sender := &recordingSender{err: errSend}
		uc := NewMessageUsecase(stubCommands{notifications: []models.Notification{first, second}}, sender)

		err := uc.ProcessMessage(context.Background(), msg)
		assert.ErrorIs(t, err, errSend)
		assert.Len(t, sender.sent, 2)
	})
}

func TestRenderProductList_EscapesMarkdown(t *testing.T) {
	t.Parallel()
	text, err := renderProductList(nil, []Snapshot{{
		Product: models.Product{ProductID: 1500, Retailer: models.RetailerFlipkart, BaseURL: "https://www.flipkart.com/", Path: "x"},
		Details: retailer.Details{Name: "Mi_Band *6*", Price: "₹2,499"},
	}})
	require.NoError(t, err)
	assert.Contains(t, text, "Product name: [Mi_Band *6*](https://www.flipkart.com/x)")
	assert.Contains(t, text, `Price: ₹2,499`)
}

func TestRenderProductList_EscapesFailedLink(t *testing.T) {
	t.Parallel()
	text, err := renderProductList(nil, []Snapshot{
		{
			Product: models.Product{ProductID: 1500, Retailer: models.RetailerFlipkart, BaseURL: "https://www.flipkart.com/", Path: "x"},
			Details: retailer.Details{Name: "Phone", Price: "₹9,999"},
		},
		{
			Product: models.Product{ProductID: 1501, Retailer: models.RetailerFlipkart, BaseURL: "https://www.flipkart.com/", Path: "apple-iphone/p/itm1?srno=s_1"},
			Err:     fetcher.ErrUnexpectedStatus,
		},
	})
	require.NoError(t, err)
	assert.Contains(t, text, "Could not fetch product details (page unavailable)")
	assert.Contains(t, text, `Link: https://www.flipkart.com/apple-iphone/p/itm1?srno=s\_1`)
	assert.NotContains(t, text, "srno=s_1")
}
