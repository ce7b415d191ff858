package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// maxChirpResponseSize limits the response body size to prevent memory exhaustion
const maxChirpResponseSize = 1 * 1024 * 1024 // 1MB max response

// ChirpAdapter implements Publisher against the Chirp HTTP API
type ChirpAdapter struct {
	config     *ChirpConfig
	httpClient *http.Client
}

// NewChirpAdapter creates a Chirp adapter with the given configuration
func NewChirpAdapter(config *ChirpConfig) (*ChirpAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &ChirpAdapter{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type chirpPostRequest struct {
	AppKey    string `json:"app_key"`
	Timestamp string `json:"timestamp"`
	Signature string `json:"signature"`
	Message   string `json:"message"`
}

// ChirpResponse is the platform's response envelope
type ChirpResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	PostID  string `json:"post_id,omitempty"`
}

// IsSuccess reports whether the platform accepted the request
func (r *ChirpResponse) IsSuccess() bool {
	return r.Code == 0
}

// Publish posts a message. Messages longer than the platform limit
// are truncated rather than rejected.
func (a *ChirpAdapter) Publish(ctx context.Context, message string) error {
	message = TruncatePost(message)
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	reqBody := chirpPostRequest{
		AppKey:    a.config.AppKey,
		Timestamp: timestamp,
		Signature: a.config.Sign(timestamp, message),
		Message:   message,
	}

	respBody, err := a.doRequest(ctx, "/statuses/create", reqBody)
	if err != nil {
		return err
	}

	var resp ChirpResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("chirp: failed to parse response: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("chirp: %d - %s", resp.Code, resp.Message)
	}
	return nil
}

func (a *ChirpAdapter) doRequest(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("chirp: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("chirp: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chirp: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxChirpResponseSize))
	if err != nil {
		return nil, fmt.Errorf("chirp: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chirp: unexpected status %d", resp.StatusCode)
	}
	return respBody, nil
}

var _ Publisher = (*ChirpAdapter)(nil)
