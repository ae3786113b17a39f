package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/uptrace/bun"
)

type TeamRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	GetByName(ctx context.Context, gameID int64, name string) (*models.Team, error)
	GetByGame(ctx context.Context, gameID int64) ([]*models.Team, error)
	GetOrCreate(ctx context.Context, gameID int64, name string) (*models.Team, bool, error)
	Rename(ctx context.Context, id int64, name string) error
}

type teamRepository struct {
	db *bun.DB
}

func NewTeamRepository(db *bun.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	team := new(models.Team)
	err := r.db.NewSelect().
		Model(team).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return team, nil
}

// GetByName matches case-sensitive exact, which is what keeps the system
// "Free For All" team stable.
func (r *teamRepository) GetByName(ctx context.Context, gameID int64, name string) (*models.Team, error) {
	team := new(models.Team)
	err := r.db.NewSelect().
		Model(team).
		Where("game_id = ?", gameID).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return team, nil
}

func (r *teamRepository) GetByGame(ctx context.Context, gameID int64) ([]*models.Team, error) {
	var teams []*models.Team
	err := r.db.NewSelect().
		Model(&teams).
		Where("game_id = ?", gameID).
		Order("name ASC").
		Scan(ctx)
	return teams, err
}

// GetOrCreate returns the (game, name) team, inserting it when absent. A
// conflicting concurrent insert is re-read, not surfaced.
func (r *teamRepository) GetOrCreate(ctx context.Context, gameID int64, name string) (*models.Team, bool, error) {
	team, err := r.GetByName(ctx, gameID, name)
	if err == nil {
		return team, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	team = &models.Team{
		GameID:    gameID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := r.db.NewInsert().Model(team).Exec(ctx); err != nil {
		if IsConflict(err) {
			team, err = r.GetByName(ctx, gameID, name)
			return team, false, err
		}
		return nil, false, err
	}
	return team, true, nil
}

func (r *teamRepository) Rename(ctx context.Context, id int64, name string) error {
	_, err := r.db.NewUpdate().
		Model((*models.Team)(nil)).
		Set("name = ?", name).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
