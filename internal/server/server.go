// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"quickcalories/internal/imageproc"
	"quickcalories/internal/models"
	"quickcalories/internal/nutrition"
	"quickcalories/internal/ratelimit"
	"quickcalories/internal/settings"
	"quickcalories/internal/storage"
)

const Version = "1.0.0"

var (
	errInvalidArguments = errors.New("invalid arguments")
	errNoEstimator      = errors.New("nutrition gateway is not configured")
)

func invalidArgs(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidArguments, fmt.Sprintf(format, args...))
}

type Config struct {
	Host string
	Port int
}

// Estimator is the AI nutrition lookup. *nutrition.Client satisfies it.
type Estimator interface {
	EstimateText(ctx context.Context, description string) (models.NutritionEstimate, error)
	EstimateImage(ctx context.Context, raw []byte, prompt string) (models.NutritionEstimate, error)
}

// TokenCoster predicts the vision cost of an image. *imageproc.Encoder satisfies it.
type TokenCoster interface {
	TokenCostFor(raw []byte) (int, error)
}

type Dependencies struct {
	Storage   *storage.SQLiteStorage
	Settings  *settings.Manager
	Limiter   *ratelimit.Limiter
	Estimator Estimator
	Images    TokenCoster
	Now       func() time.Time
}

type toolHandler func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

type QuickCaloriesServer struct {
	info       protocol.Implementation
	httpServer *http.Server
	storage    *storage.SQLiteStorage
	settings   *settings.Manager
	limiter    *ratelimit.Limiter
	estimator  Estimator
	images     TokenCoster
	now        func() time.Time
	tools      map[string]toolHandler
	config     *Config
}

func NewQuickCaloriesServer(cfg *Config, deps Dependencies) (*QuickCaloriesServer, error) {
	if deps.Storage == nil || deps.Settings == nil || deps.Limiter == nil {
		return nil, fmt.Errorf("storage, settings and limiter are required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := &QuickCaloriesServer{
		info: protocol.Implementation{
			Name:    "quickcalories",
			Version: Version,
		},
		storage:   deps.Storage,
		settings:  deps.Settings,
		limiter:   deps.Limiter,
		estimator: deps.Estimator,
		images:    deps.Images,
		now:       deps.Now,
		config:    cfg,
	}
	s.registerTools()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler routes tool calls and the health probe.
func (s *QuickCaloriesServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", s.handleHTTP)
	return mux
}

func (s *QuickCaloriesServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	result, err := handler(r.Context(), &request)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Tool %s failed: %v", request.Name, err)
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// Call runs a tool in process and returns its JSON text.
func (s *QuickCaloriesServer) Call(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	raw, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		return "", invalidArgs("failed to marshal arguments: %v", err)
	}
	var request protocol.CallToolRequest
	if err := json.Unmarshal(raw, &request); err != nil {
		return "", invalidArgs("failed to decode request: %v", err)
	}

	handler, ok := s.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	result, err := handler(ctx, &request)
	if err != nil {
		return "", err
	}
	for _, c := range result.Content {
		if text, ok := c.(protocol.TextContent); ok {
			return text.Text, nil
		}
	}
	return "", fmt.Errorf("tool %s returned no text content", name)
}

// statusFor maps tool errors onto HTTP status codes.
func statusFor(err error) int {
	var apiErr *nutrition.APIError
	var netErr *nutrition.NetworkError
	switch {
	case errors.Is(err, nutrition.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, errInvalidArguments), errors.Is(err, imageproc.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errNoEstimator):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr), errors.As(err, &netErr), errors.Is(err, nutrition.ErrInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *QuickCaloriesServer) Start(ctx context.Context) error {
	log.Printf("Starting %s %s on %s", s.info.Name, s.info.Version, s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *QuickCaloriesServer) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *QuickCaloriesServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
