package genius

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lyricspider/internal/logger"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "case folds", in: "Song", want: "song"},
		{name: "trims whitespace", in: "  Song \n", want: "song"},
		{name: "strips right single quote", in: "Don’t Stop", want: "dont stop"},
		{name: "strips zero width space", in: "So\u200bng", want: "song"},
		{name: "compatibility composition", in: "ﬁre", want: "fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.in); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchHits(t *testing.T) {
	tests := []struct {
		name       string
		hits       []Hit
		queryTitle string
		wantURL    string // empty means no candidate
	}{
		{
			name: "fallback picks first hit with complete lyrics",
			hits: []Hit{
				{Title: "Song (Remix)", URL: "https://g/remix", LyricsState: "incomplete"},
				{Title: "Song oh Song", URL: "https://g/song", LyricsState: "complete"},
			},
			queryTitle: "Song",
			wantURL:    "https://g/song",
		},
		{
			name: "exact match wins even without complete lyrics",
			hits: []Hit{
				{Title: "song", URL: "https://g/plain", LyricsState: "incomplete"},
				{Title: "Song (Live)", URL: "https://g/live", LyricsState: "complete"},
			},
			queryTitle: "Song",
			wantURL:    "https://g/plain",
		},
		{
			name: "denylisted titles never fall back",
			hits: []Hit{
				{Title: "Tracklist", URL: "https://g/tracklist", LyricsState: "complete"},
			},
			queryTitle: "Song",
			wantURL:    "",
		},
		{
			name: "instrumental hits never fall back",
			hits: []Hit{
				{Title: "Song Theme", URL: "https://g/theme", LyricsState: "complete", Instrumental: true},
			},
			queryTitle: "Song",
			wantURL:    "",
		},
		{
			name: "typographic apostrophe still matches exactly",
			hits: []Hit{
				{Title: "Don’t Stop", URL: "https://g/dont", LyricsState: "incomplete"},
			},
			queryTitle: "Don't Stop",
			wantURL:    "",
		},
		{
			name: "curly quote on both sides matches",
			hits: []Hit{
				{Title: "Don’t Stop", URL: "https://g/dont", LyricsState: "incomplete"},
			},
			queryTitle: "Dont Stop",
			wantURL:    "https://g/dont",
		},
		{
			name:       "no hits yields no candidate",
			hits:       nil,
			queryTitle: "Song",
			wantURL:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *Hit
			for phase := phaseNormalizeAndMatch; phase < phaseDone; phase++ {
				if got = matchHits(phase, tt.hits, tt.queryTitle); got != nil {
					break
				}
			}

			if tt.wantURL == "" {
				if got != nil {
					t.Fatalf("expected no candidate, got %q", got.URL)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected candidate %q, got none", tt.wantURL)
			}
			if got.URL != tt.wantURL {
				t.Errorf("expected candidate %q, got %q", tt.wantURL, got.URL)
			}
		})
	}
}

func TestResolverResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/song" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "Song Some Artist" {
			t.Errorf("unexpected query %q", q)
		}

		payload := map[string]any{
			"response": map[string]any{
				"sections": []any{
					map[string]any{
						"hits": []any{
							map[string]any{"result": map[string]any{
								"title": "Song (Remix)", "url": "https://g/remix", "lyrics_state": "incomplete",
							}},
							map[string]any{"result": map[string]any{
								"title": "Song", "url": "https://g/song", "lyrics_state": "complete",
							}},
						},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer srv.Close()

	resolver := NewResolver(NewClient(srv.URL, time.Second, 0), logger.Default())
	candidate, err := resolver.Resolve(context.Background(), "Song", "Some Artist")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if candidate == nil {
		t.Fatal("expected a candidate")
	}
	if candidate.URL != "https://g/song" {
		t.Errorf("expected https://g/song, got %s", candidate.URL)
	}
	if !candidate.HasLyrics() {
		t.Error("expected candidate to have complete lyrics")
	}
}

func TestResolverResolveNoSections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"sections":[]}}`))
	}))
	defer srv.Close()

	resolver := NewResolver(NewClient(srv.URL, time.Second, 0), logger.Default())
	candidate, err := resolver.Resolve(context.Background(), "Song", "Artist")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if candidate != nil {
		t.Errorf("expected no candidate, got %+v", candidate)
	}
}
