package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DefaultTeamName is the bucket every player starts in. Created before any
// player insert, even when the snapshot carries no team data.
const DefaultTeamName = "Free For All"

// Team name is unique per game, case-sensitive.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID     int64  `bun:"id,pk,autoincrement"`
	GameID int64  `bun:"game_id,notnull"`
	Name   string `bun:"name,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
