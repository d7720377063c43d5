package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sklad-ledger/internal/infrastructure/telegram"
)

func TestSend_EntregaElMensajeAlChat(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	n := telegram.NewBotNotifier("bot-token", "chat-42")
	n.BaseURL = srv.URL

	err := n.Send(context.Background(), "🛒 *Entrada*")
	require.NoError(t, err)
	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "chat-42", gotBody["chat_id"])
	assert.Equal(t, "🛒 *Entrada*", gotBody["text"])
	assert.Equal(t, "Markdown", gotBody["parse_mode"])
}

func TestSend_RechazoDeLaAPIEsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "chat not found"})
	}))
	defer srv.Close()

	n := telegram.NewBotNotifier("bot-token", "chat-42")
	n.BaseURL = srv.URL

	err := n.Send(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSend_SinCredencialesEsError(t *testing.T) {
	n := telegram.NewBotNotifier("", "")
	err := n.Send(context.Background(), "hola")
	assert.Error(t, err, "sin credenciales no debe intentar red")
}
