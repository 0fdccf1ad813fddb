package genius

import (
	"context"
	"fmt"
	"regexp"

	"lyricspider/internal/domain"
	"lyricspider/internal/logger"
)

// matchPhase names one pass of the hit disambiguation policy. The phases run
// in order until one yields a candidate.
type matchPhase int

const (
	// phaseNormalizeAndMatch returns the first hit whose normalized title
	// equals the normalized query title, regardless of lyrics availability.
	phaseNormalizeAndMatch matchPhase = iota
	// phaseScoredFallback returns the first hit, in API order, that claims
	// complete non-instrumental lyrics and is not obviously non-lyric
	// content (tracklists, booklet scans, interviews and so on).
	phaseScoredFallback
	phaseDone
)

// nonLyricTitle flags search hits that are genius pages without song lyrics.
var nonLyricTitle = regexp.MustCompile(`(?i)(track\s?list)|(album art(work)?)|(liner notes)|(booklet)|(credits)|(interview)|(skit)|(instrumental)|(setlist)`)

// Resolver picks the genius page that best represents a track.
type Resolver struct {
	client *Client
	log    *logger.Logger
}

// NewResolver wires a resolver around an owned search client.
func NewResolver(client *Client, log *logger.Logger) *Resolver {
	return &Resolver{
		client: client,
		log:    log.WithComponent("resolver"),
	}
}

// Resolve searches for the track and applies the disambiguation phases.
// A nil candidate with nil error means no page matched; that is an expected
// outcome, not a failure.
func (r *Resolver) Resolve(ctx context.Context, title, artists string) (*domain.SearchCandidate, error) {
	hits, err := r.client.SearchSong(ctx, title, artists)
	if err != nil {
		return nil, fmt.Errorf("search for %q: %w", title, err)
	}

	for phase := phaseNormalizeAndMatch; phase < phaseDone; phase++ {
		if hit := matchHits(phase, hits, title); hit != nil {
			r.log.Debug("resolved candidate",
				"title", title, "hit", hit.Title, "phase", int(phase))
			return hit.Candidate(), nil
		}
	}

	r.log.Debug("no candidate", "title", title, "hits", len(hits))
	return nil, nil
}

// matchHits applies a single disambiguation phase over the hits in order.
func matchHits(phase matchPhase, hits []Hit, queryTitle string) *Hit {
	for i := range hits {
		hit := &hits[i]
		switch phase {
		case phaseNormalizeAndMatch:
			if TitlesMatch(hit.Title, queryTitle) {
				return hit
			}
		case phaseScoredFallback:
			if hitHasLyrics(hit) {
				return hit
			}
		}
	}
	return nil
}

// hitHasLyrics reports whether a hit is a usable lyrics page for the
// fallback pass.
func hitHasLyrics(hit *Hit) bool {
	if domain.LyricsState(hit.LyricsState) != domain.LyricsStateComplete || hit.Instrumental {
		return false
	}
	return !nonLyricTitle.MatchString(hit.Title)
}
