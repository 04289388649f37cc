package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/util"
	"github.com/veritaslabs/veritas/internal/worker"
)

// URLIngestor fetches a web page and extracts its visible text.
// Fetches honor robots.txt and the per-domain rate limit.
type URLIngestor struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	userAgent  string
	maxBytes   int64
}

// NewURLIngestor creates a URL ingestor from HTTP and search configuration
func NewURLIngestor(httpCfg model.HTTPConfig, searchCfg model.SearchConfig) *URLIngestor {
	return &URLIngestor{
		httpClient: util.NewHTTPClient(httpCfg.Timeout, httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
		robots:     util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout, time.Hour),
		limiter:    worker.NewLimiter(searchCfg.RequestsPerSec, searchCfg.Burst),
		userAgent:  httpCfg.UserAgent,
		maxBytes:   httpCfg.MaxBodyBytes,
	}
}

// Ingest fetches rawURL and returns the page's visible text
func (u *URLIngestor) Ingest(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("invalid URL: %s", rawURL)
	}

	if !u.robots.IsAllowed(ctx, rawURL) {
		return "", fmt.Errorf("robots.txt disallows %s", parsed.Host)
	}
	if err := u.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", u.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, u.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text, err := visibleText(string(body))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// visibleText extracts text nodes from an HTML page, skipping non-content
// elements
func visibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}
