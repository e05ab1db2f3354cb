package apiclient

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
)

// HTTPClient は net/http による Client の実装です。
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

type HTTPOption func(*HTTPClient)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) {
		if c != nil {
			h.http = c
		}
	}
}

func WithLogger(l *slog.Logger) HTTPOption {
	return func(h *HTTPClient) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHTTPClient は baseURL 宛ての Client を作ります。token が空なら Authorization を付けません。
func NewHTTPClient(baseURL, token string, opts ...HTTPOption) *HTTPClient {
	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		fn(h)
	}
	return h
}

func (h *HTTPClient) Get(ctx context.Context, path string) (Result, error) {
	return h.do(ctx, http.MethodGet, path, nil)
}

func (h *HTTPClient) Post(ctx context.Context, path string, body any) (Result, error) {
	return h.do(ctx, http.MethodPost, path, body)
}

func (h *HTTPClient) Put(ctx context.Context, path string, body any) (Result, error) {
	return h.do(ctx, http.MethodPut, path, body)
}

func (h *HTTPClient) Delete(ctx context.Context, path string) (Result, error) {
	return h.do(ctx, http.MethodDelete, path, nil)
}

func (h *HTTPClient) do(ctx context.Context, method, path string, body any) (Result, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return Result{}, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	start := time.Now()
	resp, err := h.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}
	h.logger.Debug("api call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, newError(method, path, resp.StatusCode, raw)
	}
	return Normalize(raw)
}
