// internal/gateway/handler.go
package gateway

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// DefaultUpstreamURL is the chat-completions endpoint requests are relayed to.
const DefaultUpstreamURL = "https://api.openai.com/v1/chat/completions"

const defaultTimeout = 60 * time.Second

// maxBodyBytes bounds a relayed request; base64 images dominate the size.
const maxBodyBytes = 8 << 20

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	AppSecret   string
	APIKey      string
	UpstreamURL string
	HTTPClient  HTTPDoer
}

// Handler authenticates callers with a shared secret and relays their
// completion requests upstream.
type Handler struct {
	appSecret   []byte
	apiKey      string
	upstreamURL string
	client      HTTPDoer
}

func NewHandler(cfg Config) (*Handler, error) {
	if strings.TrimSpace(cfg.AppSecret) == "" {
		return nil, fmt.Errorf("app secret is required")
	}
	if cfg.UpstreamURL == "" {
		cfg.UpstreamURL = DefaultUpstreamURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Handler{
		appSecret:   []byte(cfg.AppSecret),
		apiKey:      cfg.APIKey,
		upstreamURL: cfg.UpstreamURL,
		client:      cfg.HTTPClient,
	}, nil
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	var body errorBody
	body.Error.Message = message
	data, _ := json.Marshal(body)
	writeBytes(w, status, data)
}

func writeBytes(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, x-app-secret, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if subtle.ConstantTimeCompare([]byte(r.Header.Get("x-app-secret")), h.appSecret) != 1 {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		auth = "Bearer " + h.apiKey
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Printf("Proxy error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status, payload, err := h.forward(r.Context(), auth, body)
	if err != nil {
		log.Printf("Proxy error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeBytes(w, status, payload)
}

func (h *Handler) forward(ctx context.Context, auth string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.upstreamURL, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read upstream response: %w", err)
	}
	return resp.StatusCode, payload, nil
}
