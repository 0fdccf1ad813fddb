// Package genius talks to the genius.com search API and lyrics pages.
package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lyricspider/internal/constants"
	"lyricspider/internal/domain"
	"lyricspider/internal/httpclient"
)

// Hit is one search result as the API reports it.
type Hit struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	LyricsState  string `json:"lyrics_state"`
	Instrumental bool   `json:"instrumental"`
}

// Candidate converts the hit into the pipeline's candidate shape.
func (h Hit) Candidate() *domain.SearchCandidate {
	return &domain.SearchCandidate{
		URL:          h.URL,
		Title:        h.Title,
		LyricsState:  domain.LyricsState(h.LyricsState),
		Instrumental: h.Instrumental,
	}
}

// Client queries the genius search endpoint. Each pipeline worker builds its
// own Client at startup; the embedded session state is never shared.
type Client struct {
	baseURL   string
	userAgent string
	perPage   int
	http      *httpclient.Client
}

// NewClient creates a search client rooted at baseURL (e.g.
// "https://genius.com/api"). delay is the minimum interval between requests.
func NewClient(baseURL string, timeout, delay time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: constants.DefaultUserAgent,
		perPage:   constants.DefaultSearchPerPage,
		http:      httpclient.New(timeout, delay),
	}
}

// SearchSong runs "<title> <artist>" through the song search endpoint and
// returns the first section's hits in API order.
func (c *Client) SearchSong(ctx context.Context, title, artist string) ([]Hit, error) {
	q := url.Values{}
	q.Set("q", title+" "+artist)
	q.Set("per_page", strconv.Itoa(c.perPage))
	q.Set("page", "1")

	endpoint := c.baseURL + "/search/song?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var payload struct {
		Response struct {
			Sections []struct {
				Hits []struct {
					Result Hit `json:"result"`
				} `json:"hits"`
			} `json:"sections"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if len(payload.Response.Sections) == 0 {
		return nil, nil
	}

	hits := make([]Hit, 0, len(payload.Response.Sections[0].Hits))
	for _, h := range payload.Response.Sections[0].Hits {
		hits = append(hits, h.Result)
	}
	return hits, nil
}
