// Package pipeline runs the two-stage lyrics acquisition: track backlog →
// search workers → page fetch workers → sink.
package pipeline

import (
	"context"
	"sync"

	"lyricspider/internal/domain"
	"lyricspider/internal/logger"
)

// Resolver picks the provider page for a track, or nil when none matches.
type Resolver interface {
	Resolve(ctx context.Context, title, artists string) (*domain.SearchCandidate, error)
}

// Extractor pulls lyric text out of a candidate's page. Empty text with nil
// error means the page had no recognizable lyrics.
type Extractor interface {
	Extract(ctx context.Context, candidate domain.SearchCandidate) (string, error)
}

// Sink persists one track's lyrics. inserted is false when a record already
// existed; that is a successful no-op, not an error.
type Sink interface {
	RecordLyrics(trackID int64, geniusURL, lyrics string) (inserted bool, err error)
}

// Config sizes the worker pools.
type Config struct {
	SearchWorkers int
	FetchWorkers  int
}

// Summary tallies one run. Processed counts every submitted track; Recorded
// counts new lyrics rows; Skipped is everything else (no candidate, empty
// page, already-recorded conflict, per-item failure).
type Summary struct {
	Processed int
	Recorded  int
	Skipped   int
}

// searchOutcome is the stage-1 result for one track. A nil Candidate means
// the resolver found nothing; it still flows downstream so the coordinator
// observes exactly one terminal result per submitted track.
type searchOutcome struct {
	Track     domain.Track
	Candidate *domain.SearchCandidate
}

// fetchOutcome is the terminal result for one track.
type fetchOutcome struct {
	Track     domain.Track
	Candidate *domain.SearchCandidate
	Lyrics    string
}

// Pipeline wires the worker pools together. Resolver and extractor factories
// run once per worker at startup, so each worker owns its provider client
// outright.
type Pipeline struct {
	cfg          Config
	newResolver  func() Resolver
	newExtractor func() Extractor
	sink         Sink
	log          *logger.Logger
}

func New(cfg Config, newResolver func() Resolver, newExtractor func() Extractor, sink Sink, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:          cfg,
		newResolver:  newResolver,
		newExtractor: newExtractor,
		sink:         sink,
		log:          log.WithComponent("pipeline"),
	}
}

// Run pushes the given backlog through both stages and drains the results
// into the sink. It returns once every worker has exited. Per-item failures
// are logged and counted as skipped; only sink errors are returned, and even
// then the result stream is drained first so no goroutine is left blocked.
func (p *Pipeline) Run(ctx context.Context, tracks []domain.Track) (Summary, error) {
	// The backlog is materialized up front, so buffering each queue to its
	// size means no stage ever blocks a producer: FIFO hand-off without
	// artificial coupling between stages.
	trackCh := make(chan domain.Track, len(tracks))
	candidateCh := make(chan searchOutcome, len(tracks))
	resultCh := make(chan fetchOutcome, len(tracks))

	var searchWG sync.WaitGroup
	for i := 0; i < p.cfg.SearchWorkers; i++ {
		searchWG.Add(1)
		go p.searchWorker(ctx, i, &searchWG, trackCh, candidateCh)
	}
	go func() {
		// End-of-stream travels as a channel close, never as a sentinel
		// payload.
		searchWG.Wait()
		close(candidateCh)
	}()

	var fetchWG sync.WaitGroup
	for i := 0; i < p.cfg.FetchWorkers; i++ {
		fetchWG.Add(1)
		go p.fetchWorker(ctx, i, &fetchWG, candidateCh, resultCh)
	}
	go func() {
		fetchWG.Wait()
		close(resultCh)
	}()

	for _, track := range tracks {
		trackCh <- track
	}
	close(trackCh)

	var summary Summary
	var fatal error
	for result := range resultCh {
		summary.Processed++

		if result.Lyrics == "" {
			summary.Skipped++
			continue
		}

		inserted, err := p.sink.RecordLyrics(result.Track.ID, result.Candidate.URL, result.Lyrics)
		if err != nil {
			// Store failures are fatal to the run, but keep draining so the
			// workers can finish.
			if fatal == nil {
				fatal = err
			}
			summary.Skipped++
			continue
		}

		if inserted {
			p.log.Info("recorded lyrics",
				"track_id", result.Track.ID,
				"title", result.Track.Title,
				"url", result.Candidate.URL)
			summary.Recorded++
		} else {
			summary.Skipped++
		}
	}

	return summary, fatal
}

func (p *Pipeline) searchWorker(ctx context.Context, id int, wg *sync.WaitGroup, in <-chan domain.Track, out chan<- searchOutcome) {
	defer wg.Done()

	resolver := p.newResolver()
	log := p.log.WithWorker("search", id)
	log.Debug("worker started")

	for track := range in {
		candidate, err := resolver.Resolve(ctx, track.Title, track.Artists)
		if err != nil {
			// Soft failure: the track stays in the backlog for the next run.
			log.Warn("resolve failed", "track_id", track.ID, "title", track.Title, "error", err)
			candidate = nil
		}
		out <- searchOutcome{Track: track, Candidate: candidate}
	}

	log.Debug("worker done")
}

func (p *Pipeline) fetchWorker(ctx context.Context, id int, wg *sync.WaitGroup, in <-chan searchOutcome, out chan<- fetchOutcome) {
	defer wg.Done()

	extractor := p.newExtractor()
	log := p.log.WithWorker("fetch", id)
	log.Debug("worker started")

	for outcome := range in {
		if outcome.Candidate == nil {
			out <- fetchOutcome{Track: outcome.Track}
			continue
		}

		lyrics, err := extractor.Extract(ctx, *outcome.Candidate)
		if err != nil {
			log.Warn("extract failed", "track_id", outcome.Track.ID, "url", outcome.Candidate.URL, "error", err)
			lyrics = ""
		}
		out <- fetchOutcome{Track: outcome.Track, Candidate: outcome.Candidate, Lyrics: lyrics}
	}

	log.Debug("worker done")
}
