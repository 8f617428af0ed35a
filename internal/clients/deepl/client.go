// Package deepl provides a client for the DeepL translation API, used
// to localize provider-supplied company summaries. Translation is
// best-effort: callers keep the original text on any failure.
package deepl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobmcallan/ava/internal/common"
)

const (
	DefaultFreeBaseURL = "https://api-free.deepl.com"
	DefaultProBaseURL  = "https://api.deepl.com"
	DefaultTimeout     = 5 * time.Second

	minTranslatableLength = 5
)

// Client implements the Translator interface.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new DeepL client. Free-tier keys (":fx" suffix)
// route to the free endpoint unless a base URL is set explicitly.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	baseURL := DefaultProBaseURL
	if strings.HasSuffix(apiKey, ":fx") {
		baseURL = DefaultFreeBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type translateResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate translates text into targetLang ("TR", "EN", ...).
func (c *Client) Translate(ctx context.Context, text string, targetLang string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("deepl: no API key configured")
	}
	if len(text) < minTranslatableLength {
		return text, nil
	}

	form := url.Values{}
	form.Set("auth_key", c.apiKey)
	form.Set("text", text)
	form.Set("target_lang", targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/translate",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("deepl: status %d: %s", resp.StatusCode, string(body))
	}

	var result translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Translations) == 0 {
		return "", fmt.Errorf("deepl: empty translation result")
	}

	return result.Translations[0].Text, nil
}
