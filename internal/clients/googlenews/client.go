// Package googlenews provides the primary news provider, backed by the
// Google News RSS search feed.
package googlenews

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/models"
)

const (
	DefaultBaseURL = "https://news.google.com"
	DefaultTimeout = 10 * time.Second

	maxItems = 5
)

// Client implements the NewsClient interface over the RSS search feed.
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

// NewClient creates a new Google News RSS client
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

// Name identifies the provider.
func (c *Client) Name() string { return "googlenews" }

// rssFeed mirrors the RSS search payload.
type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Source      string `xml:"source"`
	PubDate     string `xml:"pubDate"`
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// Search retrieves recent Turkish headlines for the instrument's search
// phrase.
func (c *Client) Search(ctx context.Context, inst models.Instrument) ([]*models.NewsItem, error) {
	phrase := inst.SearchPhrase
	if phrase == "" {
		phrase = inst.Name
	}

	params := url.Values{}
	params.Set("q", phrase)
	params.Set("hl", "tr")
	params.Set("gl", "TR")
	params.Set("ceid", "TR:tr")

	reqURL := c.baseURL + "/rss/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("phrase", phrase).Msg("Google News RSS request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google news RSS: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse RSS: %w", err)
	}

	items := make([]*models.NewsItem, 0, maxItems)
	for _, raw := range feed.Channel.Items {
		if len(items) >= maxItems {
			break
		}

		title := strings.TrimSpace(raw.Title)
		if title == "" {
			continue
		}

		items = append(items, &models.NewsItem{
			Title:       title,
			Description: cleanDescription(raw.Description, title),
			Source:      strings.TrimSpace(raw.Source),
			URL:         strings.TrimSpace(raw.Link),
			PublishedAt: parsePubDate(raw.PubDate),
		})
	}

	c.logger.Debug().Int("items", len(items)).Str("phrase", phrase).Msg("Google News RSS result")
	return items, nil
}

// cleanDescription strips HTML from the RSS description and drops it
// when it merely repeats the headline.
func cleanDescription(desc, title string) string {
	clean := htmlTagPattern.ReplaceAllString(desc, "")
	clean = strings.TrimSpace(html.UnescapeString(clean))
	if clean == "" {
		return ""
	}

	descNorm := normalize(clean)
	titleNorm := normalize(title)

	similar := strings.Contains(descNorm, titleNorm) ||
		strings.Contains(titleNorm, descNorm) ||
		commonPrefix(descNorm, titleNorm) >= 30
	if similar {
		return ""
	}
	return clean
}

var alnumPattern = regexp.MustCompile(`[^a-z0-9çğıöşü]`)

func normalize(s string) string {
	return alnumPattern.ReplaceAllString(strings.ToLower(s), "")
}

func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func parsePubDate(s string) time.Time {
	t, err := time.Parse(time.RFC1123, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

var articleIDPattern = regexp.MustCompile(`/articles/([^?/]+)`)

// ResolveRedirect decodes a Google News article URL into the publisher's
// real URL. The article id is URL-safe base64 wrapping a protobuf whose
// payload contains the target URL in clear text. Returns the input URL
// when decoding fails.
func ResolveRedirect(newsURL string) string {
	match := articleIDPattern.FindStringSubmatch(newsURL)
	if match == nil {
		return newsURL
	}

	id := match[1]
	for _, padding := range []string{"", "=", "==", "==="} {
		decoded, err := base64.URLEncoding.DecodeString(id + padding)
		if err != nil {
			continue
		}
		if target := extractURL(string(decoded)); target != "" {
			return target
		}
	}
	return newsURL
}

// extractURL pulls the first http(s) URL out of decoded protobuf bytes.
func extractURL(s string) string {
	start := strings.Index(s, "http")
	if start < 0 {
		return ""
	}
	candidate := s[start:]
	end := strings.IndexFunc(candidate, func(r rune) bool {
		return r < 0x20 || r == ' ' || r > 0x7e
	})
	if end > 0 {
		candidate = candidate[:end]
	}
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		return ""
	}
	return candidate
}
