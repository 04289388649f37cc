package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/veritaslabs/veritas/internal/util"
)

const factCheckEndpoint = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// FactCheckClient queries the Google Fact Check Tools API for published
// claim reviews matching a claim.
type FactCheckClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// FactCheckResult is one published fact-check review
type FactCheckResult struct {
	URL       string
	Title     string
	Rating    string // Textual rating, e.g. "False", "Misleading"
	Publisher string
}

// NewFactCheckClient creates a fact-check API client. Returns nil when no
// API key is configured; callers treat a nil client as the feature disabled.
func NewFactCheckClient(apiKey string, timeout time.Duration, httpProxy, httpsProxy, noProxy string) *FactCheckClient {
	if apiKey == "" {
		return nil
	}
	return &FactCheckClient{
		apiKey:     apiKey,
		endpoint:   factCheckEndpoint,
		httpClient: util.NewHTTPClient(timeout, httpProxy, httpsProxy, noProxy),
	}
}

// API response structures
type factCheckResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			Title         string `json:"title"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Search queries the fact-check API for claim reviews
func (f *FactCheckClient) Search(ctx context.Context, query string, maxResults int) ([]FactCheckResult, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("key", f.apiKey)
	params.Set("query", query)
	params.Set("languageCode", "en")
	params.Set("pageSize", fmt.Sprintf("%d", maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("factcheck request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var data factCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var results []FactCheckResult
	for _, claim := range data.Claims {
		if len(claim.ClaimReview) == 0 {
			continue
		}
		review := claim.ClaimReview[0]
		title := review.Title
		if title == "" {
			title = claim.Text
		}
		results = append(results, FactCheckResult{
			URL:       review.URL,
			Title:     title,
			Rating:    review.TextualRating,
			Publisher: review.Publisher.Name,
		})
		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}
