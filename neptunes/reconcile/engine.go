// Package reconcile merges canonical snapshots into the persisted game model
// without duplicating rows or clobbering operator-made overrides.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
	"github.com/Macro303/Neptunes-Pride/neptunes/providers"
)

// Result counts what one reconciliation actually changed. Re-ingesting a
// snapshot that was already recorded yields the zero Result.
type Result struct {
	TeamsCreated   int
	PlayersCreated int
	CyclesCreated  int
}

func (r Result) Empty() bool {
	return r.TeamsCreated == 0 && r.PlayersCreated == 0 && r.CyclesCreated == 0
}

type Engine struct {
	games   repositories.GameRepository
	teams   repositories.TeamRepository
	players repositories.PlayerRepository
	cycles  repositories.CycleRepository

	// ingestFinished lets snapshots for a game already marked finished still
	// be ingested (idempotently). Off by default; the scheduler skips
	// finished games either way.
	ingestFinished bool
}

type Option func(*Engine)

func WithIngestFinished(ingest bool) Option {
	return func(e *Engine) {
		e.ingestFinished = ingest
	}
}

func NewEngine(
	games repositories.GameRepository,
	teams repositories.TeamRepository,
	players repositories.PlayerRepository,
	cycles repositories.CycleRepository,
	opts ...Option,
) *Engine {
	e := &Engine{
		games:   games,
		teams:   teams,
		players: players,
		cycles:  cycles,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reconcile merges one canonical snapshot into the store. Every write is an
// independently atomic, idempotent step, so a cancelled or repeated call is
// always safe. The caller must hold the per-game lock; the uniqueness
// constraints cover for it if it does not.
func (e *Engine) Reconcile(ctx context.Context, number int64, code string, snap *providers.Snapshot) (Result, error) {
	var res Result
	if snap == nil {
		return res, fmt.Errorf("%w: nil snapshot", providers.ErrMalformedSnapshot)
	}

	game, err := e.resolveGame(ctx, number, code, snap)
	if err != nil {
		return res, err
	}

	if game.Finished && !e.ingestFinished {
		slog.Debug("Skipping snapshot for finished game",
			slog.Int64("number", number),
			slog.Int("tick", snap.Tick))
		return res, nil
	}

	// The default team exists before any player insert is attempted.
	defaultTeam, created, err := e.teams.GetOrCreate(ctx, game.ID, models.DefaultTeamName)
	if err != nil {
		return res, fmt.Errorf("failed to resolve default team for game %d: %w", number, err)
	}
	if created {
		res.TeamsCreated++
	}

	for _, ts := range snap.Teams {
		if ts.Name == models.DefaultTeamName {
			continue
		}
		if _, created, err := e.teams.GetOrCreate(ctx, game.ID, ts.Name); err != nil {
			return res, fmt.Errorf("failed to resolve team %q for game %d: %w", ts.Name, number, err)
		} else if created {
			res.TeamsCreated++
		}
	}

	for _, ps := range snap.Players {
		player, created, err := e.resolvePlayer(ctx, game.ID, defaultTeam.ID, ps.Alias)
		if err != nil {
			return res, fmt.Errorf("failed to resolve player %q for game %d: %w", ps.Alias, number, err)
		}
		if created {
			res.PlayersCreated++
		}

		appended, err := e.cycles.Create(ctx, &models.Cycle{
			PlayerID:        player.ID,
			Cycle:           snap.Tick,
			Economy:         ps.Economy,
			Industry:        ps.Industry,
			Science:         ps.Science,
			Stars:           ps.Stars,
			Fleet:           ps.Fleet,
			Ships:           ps.Ships,
			Scanning:        ps.Scanning,
			Hyperspace:      ps.Hyperspace,
			Experimentation: ps.Experimentation,
			Weapons:         ps.Weapons,
			Banking:         ps.Banking,
			Manufacturing:   ps.Manufacturing,
		})
		if err != nil {
			return res, fmt.Errorf("failed to append cycle %d for player %q: %w", snap.Tick, ps.Alias, err)
		}
		if appended {
			res.CyclesCreated++
		}
	}

	if err := e.updateHeader(ctx, game, snap); err != nil {
		return res, err
	}

	return res, nil
}

// resolveGame finds the game row or creates it on first successful fetch.
func (e *Engine) resolveGame(ctx context.Context, number int64, code string, snap *providers.Snapshot) (*models.Game, error) {
	game, err := e.games.GetByNumber(ctx, number)
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up game %d: %w", number, err)
	}

	game = &models.Game{
		Number: number,
		Code:   code,
		Name:   snap.Name,
		Tick:   snap.Tick,
	}
	created, err := e.games.Create(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("failed to create game %d: %w", number, err)
	}
	if !created {
		// Lost a race on the game number; the row is there now.
		return e.games.GetByNumber(ctx, number)
	}

	slog.Info("New game tracked",
		slog.Int64("number", number),
		slog.String("name", snap.Name),
		slog.Int("tick", snap.Tick))
	return game, nil
}

// resolvePlayer looks the player up by alias, inserting a fresh row into the
// default team when absent. The snapshot's team assignment is deliberately
// not applied here; team membership stays under operator control.
func (e *Engine) resolvePlayer(ctx context.Context, gameID, defaultTeamID int64, alias string) (*models.Player, bool, error) {
	player, err := e.players.GetByAlias(ctx, gameID, alias)
	if err == nil {
		return player, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, err
	}

	player = &models.Player{
		GameID: gameID,
		TeamID: defaultTeamID,
		Alias:  alias,
	}
	created, err := e.players.Create(ctx, player)
	if err != nil {
		return nil, false, err
	}
	if !created {
		player, err = e.players.GetByAlias(ctx, gameID, alias)
		return player, false, err
	}
	return player, true, nil
}

func (e *Engine) updateHeader(ctx context.Context, game *models.Game, snap *providers.Snapshot) error {
	if snap.Name != game.Name || snap.Tick > game.Tick {
		tick := game.Tick
		if snap.Tick > tick {
			tick = snap.Tick
		}
		if err := e.games.UpdateHeader(ctx, game.ID, snap.Name, tick); err != nil {
			return fmt.Errorf("failed to update game %d header: %w", game.Number, err)
		}
	}

	if snap.GameOver && !game.Finished {
		if err := e.games.MarkFinished(ctx, game.ID); err != nil {
			return fmt.Errorf("failed to mark game %d finished: %w", game.Number, err)
		}
		slog.Info("Game finished",
			slog.Int64("number", game.Number),
			slog.Int("tick", snap.Tick))
	}
	return nil
}
