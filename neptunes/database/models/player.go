package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Player alias is assigned by the upstream provider and unique per game.
// Name is the operator-editable display name, independent of the alias.
// TeamID is always set; only the operator write API moves a player off the
// default team.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID     int64  `bun:"id,pk,autoincrement"`
	GameID int64  `bun:"game_id,notnull"`
	TeamID int64  `bun:"team_id,notnull"`
	Alias  string `bun:"alias,notnull"`
	Name   string `bun:"name,notnull,default:''"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
