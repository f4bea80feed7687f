// Package transform talks to the text transformation (translation) service and applies its
// output to CV documents.
package transform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrUnavailable is returned when the service could not be reached or kept failing.
var ErrUnavailable = errors.New("text transform service unavailable")

// Options select the transformation.
type Options struct {
	TargetLanguage string
}

// TextTransformer transforms a batch of texts and returns them in the same order. A result
// may be shorter than the input; callers must tolerate that.
type TextTransformer interface {
	TransformTexts(ctx context.Context, texts []string, opts Options) ([]string, error)
}

// Client calls POST {base}/v1/transform.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts int
	backoff  time.Duration
	logger   *slog.Logger
}

var _ TextTransformer = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithRetry sets the attempt count and the base of the exponential backoff.
func WithRetry(attempts int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if backoff >= 0 {
			c.backoff = backoff
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		attempts: 3,
		backoff:  time.Second,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type transformRequest struct {
	Texts          []string `json:"texts"`
	TargetLanguage string   `json:"target_language"`
	Language       string   `json:"language_name"`
}

type transformResponse struct {
	Texts []string `json:"texts"`
}

// TransformTexts sends texts in one request.
func (c *Client) TransformTexts(ctx context.Context, texts []string, opts Options) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	body, err := json.Marshal(transformRequest{
		Texts:          texts,
		TargetLanguage: opts.TargetLanguage,
		Language:       LanguageName(opts.TargetLanguage),
	})
	if err != nil {
		return nil, fmt.Errorf("encode transform request: %w", err)
	}

	resp, err := c.doPostWithRetry(ctx, "/v1/transform", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read transform response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out transformResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode transform response: %w", err)
	}
	return out.Texts, nil
}

// doPostWithRetry retries transport errors and 5xx responses with exponential backoff.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	var lastErr error
	for i := 0; i < c.attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode >= http.StatusInternalServerError:
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
		default:
			return resp, nil
		}

		c.logger.Warn("transform request failed",
			"event", "transform_retry",
			"attempt", i+1,
			"error", lastErr.Error(),
		)
		if i < c.attempts-1 {
			select {
			case <-time.After(time.Duration(1<<i) * c.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

var languageNames = map[string]string{
	"vi": "Vietnamese",
	"en": "English",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
}

// LanguageName maps a language code to its English name. Unknown codes are upper-cased.
func LanguageName(code string) string {
	if n, ok := languageNames[strings.ToLower(code)]; ok {
		return n
	}
	return strings.ToUpper(code)
}
