// Package generate is the client for the external image-generation service.
// It owns the model catalog, the per-mode parameter presets, and prompt
// composition; the layer model only ever sees the resulting image URL.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	// DefaultEndpoint is the generation API base URL.
	DefaultEndpoint = "https://fal.run"

	// DefaultTimeout bounds one generation round trip.
	DefaultTimeout = 2 * time.Minute

	// DefaultMaxRetries is the number of retries on transport or server
	// errors.
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the initial delay between retries.
	DefaultRetryDelay = time.Second
)

// Errors returned by the client.
var (
	// ErrGenerationInFlight is returned when a request is issued while a
	// previous one has not resolved. The session holds a single
	// generation slot; callers surface this as a notification, not a
	// queue.
	ErrGenerationInFlight = errors.New("generate: a generation is already in flight")

	// ErrMissingPrompt is returned for requests without a prompt.
	ErrMissingPrompt = errors.New("generate: prompt is required")

	// ErrUnknownMode is returned when a creative mode has no
	// configuration.
	ErrUnknownMode = errors.New("generate: unknown creative mode")
)

// Request is one image-generation request.
type Request struct {
	Prompt            string  `json:"prompt"`
	Model             string  `json:"-"`
	Width             int     `json:"-"`
	Height            int     `json:"-"`
	NumImages         int     `json:"num_images,omitempty"`
	GuidanceScale     float64 `json:"guidance_scale,omitempty"`
	NumInferenceSteps int     `json:"num_inference_steps,omitempty"`
	NegativePrompt    string  `json:"negative_prompt,omitempty"`
	Seed              *int    `json:"seed,omitempty"`

	// ImageSize is derived from Width and Height on send.
	ImageSize string `json:"image_size,omitempty"`
}

// Image is one generated image reference.
type Image struct {
	URL         string `json:"url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ContentType string `json:"content_type"`
}

// Result is the generation response.
type Result struct {
	Images          []Image `json:"images"`
	Seed            int     `json:"seed"`
	Timings         Timings `json:"timings"`
	HasNSFWConcepts []bool  `json:"has_nsfw_concepts"`
	Prompt          string  `json:"prompt"`
}

// Timings reports how long the service spent on the request.
type Timings struct {
	Inference float64 `json:"inference"`
}

// RefineRequest re-generates an image with refinement guidance layered on
// the original prompt.
type RefineRequest struct {
	OriginalPrompt   string
	RefinementPrompt string
	Mode             string
	AspectRatio      string // square (default), portrait, landscape, wide
	Quality          int    // [10, 100], scales inference steps
	OriginalSeed     *int
}

// Client talks to the generation API. It enforces a single in-flight
// request; a second call while one is pending fails with
// ErrGenerationInFlight.
type Client struct {
	endpoint   string
	key        string
	httpClient *http.Client
	logger     *slog.Logger
	maxRetries int
	retryDelay time.Duration
	inFlight   atomic.Bool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoint sets the API base URL.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithKey sets the API credential.
func WithKey(key string) ClientOption {
	return func(c *Client) { c.key = key }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = log }
}

// WithMaxRetries sets the retry budget for transport and 5xx errors.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) { c.maxRetries = n }
}

// WithRetryDelay sets the initial backoff delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) { c.retryDelay = d }
}

// NewClient creates a generation client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:     slog.New(slog.DiscardHandler),
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate runs one generation request. Zero-valued fields get defaults:
// model flux-schnell, 1024x1024, one image, guidance 7.5, 20 steps.
func (c *Client) Generate(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || req.Prompt == "" {
		return nil, ErrMissingPrompt
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer c.inFlight.Store(false)
	return c.generate(ctx, req)
}

// Refine re-generates with refinement guidance: the combined prompt, one
// guidance point above the mode's preset, and inference steps scaled by the
// requested quality. Holds the same in-flight slot as Generate.
func (c *Client) Refine(ctx context.Context, req *RefineRequest) (*Result, error) {
	if req == nil || req.OriginalPrompt == "" || req.RefinementPrompt == "" {
		return nil, ErrMissingPrompt
	}
	cfg, ok := ModeConfigs[req.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer c.inFlight.Store(false)

	width, height := AdjustDimensions(req.AspectRatio, cfg.Width, cfg.Height)
	quality := req.Quality
	if quality <= 0 {
		quality = 85
	}

	gen := &Request{
		Prompt:            req.OriginalPrompt + ", " + req.RefinementPrompt + ", refined, improved, enhanced",
		Model:             cfg.Model,
		Width:             width,
		Height:            height,
		NumImages:         1,
		GuidanceScale:     cfg.GuidanceScale + 1.0,
		NumInferenceSteps: int(math.Round(float64(cfg.NumInferenceSteps) * float64(quality) / 100)),
		NegativePrompt:    "low quality, blurry, pixelated, distorted, worse quality, degraded",
		Seed:              req.OriginalSeed,
	}
	return c.generate(ctx, gen)
}

// InFlight reports whether a generation is currently pending.
func (c *Client) InFlight() bool {
	return c.inFlight.Load()
}

func (c *Client) generate(ctx context.Context, req *Request) (*Result, error) {
	body := *req
	if body.Model == "" {
		body.Model = Models["flux-schnell"]
	}
	if body.Width == 0 {
		body.Width = 1024
	}
	if body.Height == 0 {
		body.Height = 1024
	}
	if body.NumImages == 0 {
		body.NumImages = 1
	}
	if body.GuidanceScale == 0 {
		body.GuidanceScale = 7.5
	}
	if body.NumInferenceSteps == 0 {
		body.NumInferenceSteps = 20
	}
	body.ImageSize = fmt.Sprintf("%dx%d", body.Width, body.Height)

	c.logger.Info("generating image",
		"model", body.Model,
		"size", body.ImageSize,
		"steps", body.NumInferenceSteps)

	var result Result
	if err := c.doRequest(ctx, "/"+body.Model, &body, &result); err != nil {
		return nil, err
	}
	if result.Prompt == "" {
		result.Prompt = body.Prompt
	}
	return &result, nil
}

// doRequest posts a JSON body and decodes the JSON response, retrying
// transport failures and 5xx statuses with exponential backoff.
func (c *Client) doRequest(ctx context.Context, path string, body, response any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
			c.logger.Debug("retrying generation request",
				"attempt", attempt, "delay", delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.key != "" {
			req.Header.Set("Authorization", "Key "+c.key)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("execute request: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			msg := apiErrorMessage(resp.StatusCode, respBody)
			if resp.StatusCode >= 500 {
				lastErr = errors.New(msg)
				continue
			}
			return errors.New(msg)
		}

		if response != nil {
			if err := json.Unmarshal(respBody, response); err != nil {
				return fmt.Errorf("unmarshal response: %w", err)
			}
		}
		return nil
	}
	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func apiErrorMessage(status int, body []byte) string {
	var errResp struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Error != "" {
			return fmt.Sprintf("generation API error (status %d): %s", status, errResp.Error)
		}
		if errResp.Detail != "" {
			return fmt.Sprintf("generation API error (status %d): %s", status, errResp.Detail)
		}
	}
	return fmt.Sprintf("generation API error (status %d): %s", status, string(body))
}
