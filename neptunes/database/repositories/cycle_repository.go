package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/uptrace/bun"
)

type CycleRepository interface {
	Create(ctx context.Context, cycle *models.Cycle) (bool, error)
	Exists(ctx context.Context, playerID int64, tick int) (bool, error)
	GetLatest(ctx context.Context, playerID int64) (*models.Cycle, error)
	GetHistory(ctx context.Context, playerID int64) ([]*models.Cycle, error)
}

type cycleRepository struct {
	db *bun.DB
}

func NewCycleRepository(db *bun.DB) CycleRepository {
	return &cycleRepository{db: db}
}

// Create appends a cycle record. A (player, cycle) conflict means this tick
// was already ingested; that is the idempotency guarantee, reported as
// created=false and never as an error.
func (r *cycleRepository) Create(ctx context.Context, cycle *models.Cycle) (bool, error) {
	cycle.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(cycle).Exec(ctx)
	if err != nil {
		if IsConflict(err) {
			slog.Debug("Cycle already recorded",
				slog.String("type", "db"),
				slog.Int64("player_id", cycle.PlayerID),
				slog.Int("cycle", cycle.Cycle))
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *cycleRepository) Exists(ctx context.Context, playerID int64, tick int) (bool, error) {
	return r.db.NewSelect().
		Model((*models.Cycle)(nil)).
		Where("player_id = ?", playerID).
		Where("cycle = ?", tick).
		Exists(ctx)
}

func (r *cycleRepository) GetLatest(ctx context.Context, playerID int64) (*models.Cycle, error) {
	cycle := new(models.Cycle)
	err := r.db.NewSelect().
		Model(cycle).
		Where("player_id = ?", playerID).
		Order("cycle DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return cycle, nil
}

// GetHistory returns all records for the player, ascending by cycle. Ticks
// may be missing when a fetch was skipped, but never duplicated.
func (r *cycleRepository) GetHistory(ctx context.Context, playerID int64) ([]*models.Cycle, error) {
	var cycles []*models.Cycle
	err := r.db.NewSelect().
		Model(&cycles).
		Where("player_id = ?", playerID).
		Order("cycle ASC").
		Scan(ctx)
	return cycles, err
}
