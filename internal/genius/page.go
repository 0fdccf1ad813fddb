package genius

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"lyricspider/internal/constants"
	"lyricspider/internal/domain"
	"lyricspider/internal/httpclient"
	"lyricspider/internal/logger"
)

// lyricsContainerSelector matches the page elements genius flags as holding
// lyric text.
const lyricsContainerSelector = "[data-lyrics-container]"

// Extractor fetches a candidate's page and pulls the lyric text out of it.
// Like the search client, one Extractor belongs to exactly one worker.
type Extractor struct {
	userAgent string
	http      *httpclient.Client
	log       *logger.Logger
}

// NewExtractor creates a page extractor. delay is the minimum interval
// between page fetches.
func NewExtractor(timeout, delay time.Duration, log *logger.Logger) *Extractor {
	return &Extractor{
		userAgent: constants.DefaultUserAgent,
		http:      httpclient.New(timeout, delay),
		log:       log.WithComponent("extractor"),
	}
}

// Extract fetches the candidate's page and returns the concatenated text of
// every lyrics container, in document order, newline-joined. An empty string
// with nil error means the page had no recognizable lyrics markup; that is a
// soft failure the caller records as "no lyrics this run".
func (e *Extractor) Extract(ctx context.Context, candidate domain.SearchCandidate) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.http.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("page request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	var chunks []string
	doc.Find(lyricsContainerSelector).Each(func(_ int, sel *goquery.Selection) {
		if text := containerText(sel); text != "" {
			chunks = append(chunks, text)
		}
	})

	if len(chunks) == 0 {
		e.log.Warn("page has no lyrics containers", "url", candidate.URL)
		return "", nil
	}

	return strings.Join(chunks, "\n"), nil
}

// containerText renders the visible text of a lyrics container, turning <br>
// elements into newlines. goquery's Text() drops line structure, which
// matters for lyrics.
func containerText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeNodeText(&b, node)
	}
	return strings.TrimSpace(b.String())
}

func writeNodeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(b, c)
	}
}
