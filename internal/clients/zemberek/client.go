// Package zemberek provides a client for the Turkish morphological
// analysis service. Annotation is best-effort: callers fall back to a
// rule-based default when the service is unavailable.
package zemberek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/models"
)

const (
	DefaultBaseURL = "http://localhost:8502"
	DefaultTimeout = 5 * time.Second
)

// Client implements the MorphAnalyzer interface.
type Client struct {
	baseURL    string
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

// NewClient creates a new morphological analysis client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
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

type annotateRequest struct {
	Text string `json:"text"`
}

type annotateResponse struct {
	Verb       string `json:"verb"`
	Tense      string `json:"tense"`
	IsQuestion bool   `json:"is_question"`
}

// Annotate posts the utterance and returns the main verb's lemma, its
// tense category and the question flag.
func (c *Client) Annotate(ctx context.Context, text string) (*models.Annotation, error) {
	payload, err := json.Marshal(annotateRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("zemberek: status %d: %s", resp.StatusCode, string(body))
	}

	var result annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	annotation := &models.Annotation{
		Verb:       result.Verb,
		Tense:      parseTense(result.Tense),
		IsQuestion: result.IsQuestion,
	}
	if annotation.Verb == "" {
		annotation.Verb = "belirsiz"
	}

	c.logger.Debug().
		Str("verb", annotation.Verb).
		Str("tense", string(annotation.Tense)).
		Bool("is_question", annotation.IsQuestion).
		Msg("Utterance annotated")

	return annotation, nil
}

func parseTense(s string) models.Tense {
	switch models.Tense(s) {
	case models.TenseFuture, models.TensePast, models.TensePresent, models.TenseNecessity:
		return models.Tense(s)
	default:
		return models.TenseUnspecified
	}
}
