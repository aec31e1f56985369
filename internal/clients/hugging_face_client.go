package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/thaisenti/internal/models"
	"golang.org/x/oauth2"
)

type HuggingFaceConfig struct {
	BaseURL    string
	Token      string
	Production bool
}

type HuggingFaceClient struct {
	Client     *http.Client
	BaseURL    string
	MaxRetries int
	Backoff    time.Duration
}

func NewHuggingFaceClient(cfg HuggingFaceConfig) *HuggingFaceClient {
	timeout := 60 * time.Second
	if cfg.Production {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{}
	if cfg.Token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	}
	httpClient.Timeout = timeout

	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.Duration("timeout", timeout),
		slog.String("base_url", baseURL),
		slog.Bool("authenticated", cfg.Token != ""))

	return &HuggingFaceClient{
		Client:     httpClient,
		BaseURL:    baseURL,
		MaxRetries: MAX_RETRIES,
		Backoff:    INITIAL_BACKOFF,
	}
}

// DoWithRetry retries transport errors and 5xx responses (including 503 while a model loads)
// with a doubling backoff. build is called once per attempt so request bodies can be replayed.
func (h *HuggingFaceClient) DoWithRetry(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := h.Backoff

	for attempt := 0; attempt < h.MaxRetries; attempt++ {
		req, buildErr := build()
		if buildErr != nil {
			return nil, buildErr
		}

		resp, err = h.Client.Do(req.WithContext(ctx))
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		msg := errMsg(err, resp)
		if resp != nil && attempt < h.MaxRetries-1 {
			resp.Body.Close()
		}

		if attempt == h.MaxRetries-1 {
			break
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", msg))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	return resp, err
}

// Classify runs a text-classification model on texts and returns every label's score per input.
func (h *HuggingFaceClient) Classify(ctx context.Context, model string, texts []string) (models.ClassificationBatchResponse, error) {
	endpoint := h.BaseURL + model
	slog.Debug("[HuggingFaceClient] Requesting classification",
		slog.String("model", model),
		slog.Int("inputs", len(texts)))
	start := time.Now()

	input := models.HuggingFaceRequest{
		Inputs:  texts,
		Options: &models.HuggingFaceOption{WaitForModel: true, UseCache: true},
	}

	var raw json.RawMessage
	if err := h.postJSON(ctx, endpoint, input, &raw); err != nil {
		slog.Error("[HuggingFaceClient] Classification request failed",
			slog.String("model", model),
			slog.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	result, err := decodeClassification(raw, len(texts))
	if err != nil {
		return nil, err
	}

	slog.Debug("[HuggingFaceClient] Classification request successful",
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// HealthCheck reports whether the model endpoint answers without a server error.
func (h *HuggingFaceClient) HealthCheck(ctx context.Context, model string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+model, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Health check failed",
			slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode < 500
}

// decodeClassification accepts both the nested [[...]] shape and the flat [...] shape the
// inference API uses for a single input.
func decodeClassification(raw json.RawMessage, inputs int) (models.ClassificationBatchResponse, error) {
	var nested models.ClassificationBatchResponse
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) != inputs {
			return nil, fmt.Errorf("expected %d classifications, got %d", inputs, len(nested))
		}
		return nested, nil
	}

	var flat []models.LabelScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	switch {
	case inputs == 1:
		return models.ClassificationBatchResponse{flat}, nil
	case len(flat) == inputs:
		out := make(models.ClassificationBatchResponse, 0, inputs)
		for _, ls := range flat {
			out = append(out, []models.LabelScore{ls})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected %d classifications, got %d labels", inputs, len(flat))
	}
}

func (h *HuggingFaceClient) postJSON(ctx context.Context, endpoint string, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to marshal input",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	resp, err := h.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", USER_AGENT)
		return req, nil
	})
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed request after retries",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to read response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr models.HuggingFaceError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("inference API returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("inference API returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))

		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := []rune(string(respBody))
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", string(raw))
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
