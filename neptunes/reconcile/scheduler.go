package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
	"github.com/Macro303/Neptunes-Pride/neptunes/providers"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const defaultMaxConcurrent = 4

// TrackedGame is one configured game: its external number, API code and the
// provider tag that selects the normalizer.
type TrackedGame struct {
	Number   int64
	Code     string
	Provider string
}

// Fetcher pulls one raw snapshot payload from an upstream provider.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, tag string, number int64, code string) ([]byte, error)
}

// Scheduler drives periodic reconciliation over the configured games.
// Distinct games run concurrently under a weighted semaphore; runs for the
// same game are serialized by a per-game mutex held for the whole
// fetch-normalize-reconcile span.
type Scheduler struct {
	engine   *Engine
	fetcher  Fetcher
	registry *providers.Registry
	games    repositories.GameRepository

	tracked  []TrackedGame
	interval time.Duration
	sem      *semaphore.Weighted

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewScheduler(
	engine *Engine,
	fetcher Fetcher,
	registry *providers.Registry,
	games repositories.GameRepository,
	tracked []TrackedGame,
	interval time.Duration,
	maxConcurrent int,
) *Scheduler {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &Scheduler{
		engine:   engine,
		fetcher:  fetcher,
		registry: registry,
		games:    games,
		tracked:  tracked,
		interval: interval,
		sem:      semaphore.NewWeighted(int64(maxConcurrent)),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// ValidateProviders confirms every configured provider tag has a registered
// normalizer. Called at startup so a config typo fails fast.
func (s *Scheduler) ValidateProviders() error {
	for _, g := range s.tracked {
		if _, err := s.registry.Get(g.Provider); err != nil {
			return err
		}
	}
	return nil
}

// Start runs one immediate pass, then ticks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		s.RunOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce reconciles every tracked game. Per-game failures are logged and
// left to the next tick; only context cancellation aborts the pass.
func (s *Scheduler) RunOnce(ctx context.Context) {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	for _, tracked := range s.tracked {
		tracked := tracked
		g.Go(func() error {
			if err := s.sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer s.sem.Release(1)

			s.syncGame(ctx, tracked)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Warn("Reconciliation pass aborted",
			slog.String("type", "sync"),
			slog.Any("error", err))
		return
	}

	slog.Debug("Reconciliation pass complete",
		slog.String("type", "sync"),
		slog.Int("games", len(s.tracked)),
		slog.Duration("took", time.Since(start)))
}

func (s *Scheduler) syncGame(ctx context.Context, tracked TrackedGame) {
	lock := s.gameLock(tracked.Number)
	lock.Lock()
	defer lock.Unlock()

	logger := slog.With(
		slog.String("type", "sync"),
		slog.Int64("number", tracked.Number),
		slog.String("provider", tracked.Provider),
	)

	// Finished games are terminal; stop fetching them.
	game, err := s.games.GetByNumber(ctx, tracked.Number)
	if err == nil && game.Finished {
		logger.Debug("Skipping finished game")
		return
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		logger.Error("Game lookup failed, retrying next tick", slog.Any("error", err))
		return
	}

	normalizer, err := s.registry.Get(tracked.Provider)
	if err != nil {
		logger.Error("No normalizer for provider", slog.Any("error", err))
		return
	}

	start := time.Now()
	payload, err := s.fetcher.FetchSnapshot(ctx, tracked.Provider, tracked.Number, tracked.Code)
	if err != nil {
		logger.Warn("Snapshot fetch failed, retrying next tick", slog.Any("error", err))
		return
	}

	snap, err := normalizer.Normalize(payload)
	if err != nil {
		// Not retryable; this fetch cycle is skipped for this game only.
		logger.Warn("Snapshot rejected", slog.Any("error", err))
		return
	}

	res, err := s.engine.Reconcile(ctx, tracked.Number, tracked.Code, snap)
	if err != nil {
		logger.Error("Reconciliation failed, retrying next tick", slog.Any("error", err))
		return
	}

	if res.Empty() {
		logger.Debug("Snapshot already ingested",
			slog.Int("tick", snap.Tick),
			slog.Duration("took", time.Since(start)))
		return
	}
	logger.Info("Snapshot reconciled",
		slog.Int("tick", snap.Tick),
		slog.Int("teams_created", res.TeamsCreated),
		slog.Int("players_created", res.PlayersCreated),
		slog.Int("cycles_created", res.CyclesCreated),
		slog.Duration("took", time.Since(start)))
}

func (s *Scheduler) gameLock(number int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[number]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[number] = lock
	}
	return lock
}
