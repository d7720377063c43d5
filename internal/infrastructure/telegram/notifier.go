package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/sklad-ledger/internal/application/inventory"
)

// Verificar en tiempo de compilación que BotNotifier implementa el puerto.
var _ inventory.Notifier = (*BotNotifier)(nil)

const defaultAPIBase = "https://api.telegram.org"

// BotNotifier adaptador que implementa inventory.Notifier usando la Bot API
// de Telegram (sendMessage). Usa net/http de la librería estándar; no
// requiere un SDK. La entrega es best-effort: el caller decide qué hacer con
// el error, este adaptador solo lo reporta.
type BotNotifier struct {
	token      string
	chatID     string
	httpClient *http.Client

	// BaseURL permite apuntar a un servidor alterno (tests). Vacío = Bot API real.
	BaseURL string
}

// NewBotNotifier construye el adaptador. Si token o chatID están vacíos,
// Send devuelve error descriptivo en lugar de panic.
func NewBotNotifier(token, chatID string) *BotNotifier {
	return &BotNotifier{
		token:  token,
		chatID: chatID,
		httpClient: &http.Client{
			// Timeout de red propio; el caller impone además su context
			Timeout: 15 * time.Second,
		},
	}
}

// ── Estructuras del protocolo sendMessage ─────────────────────────────────────

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// Send entrega el texto al chat configurado con parse_mode Markdown.
func (n *BotNotifier) Send(ctx context.Context, text string) error {
	if n.token == "" || n.chatID == "" {
		return fmt.Errorf("telegram: credenciales no configuradas")
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("telegram: serializar mensaje: %w", err)
	}

	base := n.BaseURL
	if base == "" {
		base = defaultAPIBase
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", base, n.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: enviar: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("telegram: leer respuesta: %w", err)
	}

	var out sendMessageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("telegram: respuesta inesperada (HTTP %d): %w", resp.StatusCode, err)
	}
	if !out.OK {
		return fmt.Errorf("telegram: sendMessage rechazado (HTTP %d): %s", resp.StatusCode, out.Description)
	}
	return nil
}
