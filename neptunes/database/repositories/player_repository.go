package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/uptrace/bun"
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	GetByAlias(ctx context.Context, gameID int64, alias string) (*models.Player, error)
	GetByGame(ctx context.Context, gameID int64) ([]*models.Player, error)
	GetByTeam(ctx context.Context, teamID int64) ([]*models.Player, error)
	Update(ctx context.Context, id int64, teamID int64, name string) error
}

type playerRepository struct {
	db *bun.DB
}

func NewPlayerRepository(db *bun.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// Create inserts the player. Returns false when the (game, alias) pair is
// already taken; the caller re-reads instead of treating it as an error.
func (r *playerRepository) Create(ctx context.Context, player *models.Player) (bool, error) {
	player.CreatedAt = time.Now()
	player.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(player).Exec(ctx)
	if err != nil {
		if IsConflict(err) {
			slog.Debug("Player already exists",
				slog.String("type", "db"),
				slog.Int64("game_id", player.GameID),
				slog.String("alias", player.Alias))
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	player := new(models.Player)
	err := r.db.NewSelect().
		Model(player).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return player, nil
}

func (r *playerRepository) GetByAlias(ctx context.Context, gameID int64, alias string) (*models.Player, error) {
	player := new(models.Player)
	err := r.db.NewSelect().
		Model(player).
		Where("game_id = ?", gameID).
		Where("alias = ?", alias).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return player, nil
}

func (r *playerRepository) GetByGame(ctx context.Context, gameID int64) ([]*models.Player, error) {
	var players []*models.Player
	err := r.db.NewSelect().
		Model(&players).
		Where("game_id = ?", gameID).
		Order("team_id ASC", "alias ASC").
		Scan(ctx)
	return players, err
}

func (r *playerRepository) GetByTeam(ctx context.Context, teamID int64) ([]*models.Player, error) {
	var players []*models.Player
	err := r.db.NewSelect().
		Model(&players).
		Where("team_id = ?", teamID).
		Order("alias ASC").
		Scan(ctx)
	return players, err
}

// Update applies the two operator-controlled fields: team membership and
// display name. Reconciliation never calls this.
func (r *playerRepository) Update(ctx context.Context, id int64, teamID int64, name string) error {
	_, err := r.db.NewUpdate().
		Model((*models.Player)(nil)).
		Set("team_id = ?", teamID).
		Set("name = ?", name).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
