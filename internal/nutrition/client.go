// internal/nutrition/client.go
package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quickcalories/internal/models"
	"quickcalories/internal/ratelimit"
)

// RequestTimeout bounds every dispatch, image payloads included.
const RequestTimeout = 30 * time.Second

// HTTPDoer abstracts the HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Gate hands out quota slots.
type Gate interface {
	Reserve() (*ratelimit.Reservation, error)
}

// Credentials supplies the user's own upstream key, if any.
type Credentials interface {
	UserAPIKey() string
}

type ImageEncoder interface {
	EncodeDataURI(raw []byte) (string, error)
}

type Config struct {
	GatewayURL  string
	AppSecret   string
	Model       string
	HTTPClient  HTTPDoer
	Limiter     Gate
	Credentials Credentials
	Encoder     ImageEncoder
}

type Client struct {
	httpClient  HTTPDoer
	gatewayURL  string
	appSecret   string
	model       string
	limiter     Gate
	credentials Credentials
	encoder     ImageEncoder
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.GatewayURL) == "" {
		return nil, fmt.Errorf("gateway url is required")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: RequestTimeout}
	}
	return &Client{
		httpClient:  cfg.HTTPClient,
		gatewayURL:  cfg.GatewayURL,
		appSecret:   cfg.AppSecret,
		model:       modelOrDefault(cfg.Model),
		limiter:     cfg.Limiter,
		credentials: cfg.Credentials,
		encoder:     cfg.Encoder,
	}, nil
}

// EstimateText asks for the nutrition of a free-text description.
func (c *Client) EstimateText(ctx context.Context, description string) (models.NutritionEstimate, error) {
	if strings.TrimSpace(description) == "" {
		return models.NutritionEstimate{}, fmt.Errorf("food description is required")
	}
	res, err := c.reserve()
	if err != nil {
		return models.NutritionEstimate{}, err
	}
	defer res.Release()
	return c.send(ctx, BuildTextRequest(c.model, description), res)
}

// EstimateImage asks for the nutrition of a food photo. The quota is checked
// before the image is encoded.
func (c *Client) EstimateImage(ctx context.Context, raw []byte, prompt string) (models.NutritionEstimate, error) {
	if c.encoder == nil {
		return models.NutritionEstimate{}, fmt.Errorf("image encoder is not configured")
	}
	res, err := c.reserve()
	if err != nil {
		return models.NutritionEstimate{}, err
	}
	defer res.Release()

	dataURI, err := c.encoder.EncodeDataURI(raw)
	if err != nil {
		return models.NutritionEstimate{}, fmt.Errorf("process image: %w", err)
	}
	return c.send(ctx, BuildImageRequest(c.model, dataURI, prompt), res)
}

// Dispatch sends a prebuilt payload under the quota.
func (c *Client) Dispatch(ctx context.Context, payload CompletionRequest) (models.NutritionEstimate, error) {
	res, err := c.reserve()
	if err != nil {
		return models.NutritionEstimate{}, err
	}
	defer res.Release()
	return c.send(ctx, payload, res)
}

func (c *Client) reserve() (*ratelimit.Reservation, error) {
	if c.limiter == nil {
		return nil, nil
	}
	res, err := c.limiter.Reserve()
	if errors.Is(err, ratelimit.ErrQuotaExhausted) {
		return nil, ErrRateLimitExceeded
	}
	return res, err
}

// send posts payload to the gateway. Only a 200 with a parseable body commits res.
func (c *Client) send(ctx context.Context, payload CompletionRequest, res *ratelimit.Reservation) (models.NutritionEstimate, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.NutritionEstimate{}, invalidResponse("marshal request: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return models.NutritionEstimate{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-secret", c.appSecret)
	if c.credentials != nil {
		if key := strings.TrimSpace(c.credentials.UserAPIKey()); key != "" {
			req.Header.Set("Authorization", "Bearer "+key)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.NutritionEstimate{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.NutritionEstimate{}, &NetworkError{Err: err}
	}
	if !isOK(resp.StatusCode) {
		return models.NutritionEstimate{}, apiErrorFrom(resp.StatusCode, data)
	}

	estimate, err := ParseCompletion(data)
	if err != nil {
		return models.NutritionEstimate{}, err
	}
	res.Commit()
	return estimate, nil
}
