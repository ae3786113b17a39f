package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Macro303/Neptunes-Pride/neptunes/providers"
)

// fakeFetcher serves canned payloads keyed by game number and counts fetches.
type fakeFetcher struct {
	mu       sync.Mutex
	payloads map[int64]string
	fetches  map[int64]int
}

func newFakeFetcher(payloads map[int64]string) *fakeFetcher {
	return &fakeFetcher{
		payloads: payloads,
		fetches:  make(map[int64]int),
	}
}

func (f *fakeFetcher) FetchSnapshot(_ context.Context, _ string, number int64, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[number]++
	payload, ok := f.payloads[number]
	if !ok {
		return nil, errors.New("upstream timeout")
	}
	return []byte(payload), nil
}

func (f *fakeFetcher) count(number int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[number]
}

func tritonBody(name string, tick int, gameOver int) string {
	return fmt.Sprintf(`{"scanning_data": {"name": %q, "tick": %d, "game_over": %d, "players": {
		"1": {"alias": "Boru", "total_economy": 10, "tech": {"banking": {"level": 1}}}
	}}}`, name, tick, gameOver)
}

func newTestScheduler(store *memStore, fetcher Fetcher, tracked []TrackedGame) *Scheduler {
	engine := newTestEngine(store)
	return NewScheduler(engine, fetcher, providers.NewRegistry(), store.Games(), tracked, time.Hour, 2)
}

func TestScheduler_RunOnce(t *testing.T) {
	store := newMemStore()
	fetcher := newFakeFetcher(map[int64]string{
		1: tritonBody("Alpha", 3, 0),
		2: tritonBody("Beta", 8, 0),
	})
	s := newTestScheduler(store, fetcher, []TrackedGame{
		{Number: 1, Code: "aaa", Provider: providers.TagTriton},
		{Number: 2, Code: "bbb", Provider: providers.TagTriton},
	})

	s.RunOnce(context.Background())

	games, _ := store.Games().GetAll(context.Background())
	if len(games) != 2 {
		t.Fatalf("games = %d, want 2", len(games))
	}
	if got := len(store.cycles); got != 2 {
		t.Errorf("cycle rows = %d, want 2", got)
	}

	// Second pass over the same snapshots changes nothing.
	s.RunOnce(context.Background())
	if got := len(store.cycles); got != 2 {
		t.Errorf("cycle rows after repeat = %d, want 2", got)
	}
}

func TestScheduler_RunOnce_FetchFailureIsolated(t *testing.T) {
	store := newMemStore()
	// Game 2 has no payload, so its fetch errors every time.
	fetcher := newFakeFetcher(map[int64]string{
		1: tritonBody("Alpha", 3, 0),
	})
	s := newTestScheduler(store, fetcher, []TrackedGame{
		{Number: 1, Code: "aaa", Provider: providers.TagTriton},
		{Number: 2, Code: "bbb", Provider: providers.TagTriton},
	})

	s.RunOnce(context.Background())

	if _, err := store.Games().GetByNumber(context.Background(), 1); err != nil {
		t.Errorf("healthy game not reconciled: %v", err)
	}
	if got := len(store.games); got != 1 {
		t.Errorf("games = %d, want 1", got)
	}
}

func TestScheduler_RunOnce_MalformedPayloadSkipped(t *testing.T) {
	store := newMemStore()
	fetcher := newFakeFetcher(map[int64]string{
		1: `{"error": "api_error"}`,
	})
	s := newTestScheduler(store, fetcher, []TrackedGame{
		{Number: 1, Code: "aaa", Provider: providers.TagTriton},
	})

	s.RunOnce(context.Background())

	if got := len(store.games); got != 0 {
		t.Errorf("games = %d, want 0 after malformed payload", got)
	}
}

func TestScheduler_RunOnce_FinishedGameNotFetched(t *testing.T) {
	store := newMemStore()
	fetcher := newFakeFetcher(map[int64]string{
		1: tritonBody("Alpha", 90, 1),
	})
	s := newTestScheduler(store, fetcher, []TrackedGame{
		{Number: 1, Code: "aaa", Provider: providers.TagTriton},
	})

	s.RunOnce(context.Background())
	game, err := store.Games().GetByNumber(context.Background(), 1)
	if err != nil || !game.Finished {
		t.Fatalf("game not finished after game-over snapshot: %+v, %v", game, err)
	}
	if fetcher.count(1) != 1 {
		t.Fatalf("fetches = %d, want 1", fetcher.count(1))
	}

	s.RunOnce(context.Background())
	if fetcher.count(1) != 1 {
		t.Errorf("fetches after finish = %d, want still 1", fetcher.count(1))
	}
}

func TestScheduler_ValidateProviders(t *testing.T) {
	store := newMemStore()
	fetcher := newFakeFetcher(nil)

	s := newTestScheduler(store, fetcher, []TrackedGame{
		{Number: 1, Code: "aaa", Provider: providers.TagProteus},
	})
	if err := s.ValidateProviders(); err != nil {
		t.Errorf("ValidateProviders() error = %v", err)
	}

	s = newTestScheduler(store, fetcher, []TrackedGame{
		{Number: 1, Code: "aaa", Provider: "andromeda"},
	})
	if err := s.ValidateProviders(); !errors.Is(err, providers.ErrUnknownProvider) {
		t.Errorf("ValidateProviders() error = %v, want ErrUnknownProvider", err)
	}
}
