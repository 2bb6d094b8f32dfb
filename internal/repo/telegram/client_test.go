package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nguyentranbao-ct/price-bot/internal/config"
	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	conf := &config.Config{}
	conf.Telegram.Token = "123:abc"
	conf.Telegram.BaseURL = baseURL
	return conf
}

func TestSendMessage(t *testing.T) {
	t.Parallel()
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	err = c.SendMessage(t.Context(), models.NewNotification("42", "*hello*"))
	require.NoError(t, err)
	assert.Equal(t, sendMessageRequest{ChatID: "42", Text: "*hello*", ParseMode: "Markdown"}, got)
}

func TestSendMessageAPIError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	err = c.SendMessage(t.Context(), models.NewNotification("42", "hi"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestNewClientRequiresToken(t *testing.T) {
	t.Parallel()
	_, err := NewClient(&config.Config{})
	assert.ErrorIs(t, err, ErrMissingToken)
}
