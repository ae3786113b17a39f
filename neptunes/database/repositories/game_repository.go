package repositories

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/uptrace/bun"
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	GetByNumber(ctx context.Context, number int64) (*models.Game, error)
	GetLatest(ctx context.Context) (*models.Game, error)
	GetAll(ctx context.Context) ([]*models.Game, error)
	UpdateHeader(ctx context.Context, id int64, name string, tick int) error
	MarkFinished(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type gameRepository struct {
	db *bun.DB
}

func NewGameRepository(db *bun.DB) GameRepository {
	return &gameRepository{db: db}
}

// Create inserts the game row. Returns false when the game number is already
// present, which only happens when two reconciliations race on first fetch.
func (r *gameRepository) Create(ctx context.Context, game *models.Game) (bool, error) {
	game.CreatedAt = time.Now()
	game.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(game).Exec(ctx)
	if err != nil {
		if IsConflict(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	game := new(models.Game)
	err := r.db.NewSelect().
		Model(game).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return game, nil
}

func (r *gameRepository) GetByNumber(ctx context.Context, number int64) (*models.Game, error) {
	game := new(models.Game)
	err := r.db.NewSelect().
		Model(game).
		Where("number = ?", number).
		Scan(ctx)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			slog.Debug("Game not yet tracked",
				slog.String("type", "db"),
				slog.Int64("number", number))
		}
		return nil, notFound(err)
	}
	return game, nil
}

// GetLatest returns the most recently added game, used by routes that omit an
// explicit game number.
func (r *gameRepository) GetLatest(ctx context.Context) (*models.Game, error) {
	game := new(models.Game)
	err := r.db.NewSelect().
		Model(game).
		Order("id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return game, nil
}

func (r *gameRepository) GetAll(ctx context.Context) ([]*models.Game, error) {
	var games []*models.Game
	err := r.db.NewSelect().
		Model(&games).
		Order("id ASC").
		Scan(ctx)
	return games, err
}

func (r *gameRepository) UpdateHeader(ctx context.Context, id int64, name string, tick int) error {
	_, err := r.db.NewUpdate().
		Model((*models.Game)(nil)).
		Set("name = ?", name).
		Set("tick = ?", tick).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// MarkFinished is terminal: the scheduler stops fetching a finished game.
func (r *gameRepository) MarkFinished(ctx context.Context, id int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.Game)(nil)).
		Set("finished = true").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// Delete removes the game; teams, players and cycles go with it via the
// cascade constraints.
func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*models.Game)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
