package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Game is one tracked Neptune's Pride session. Number is the external game
// number assigned by the provider, Code the API credential used to re-fetch it.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Number   int64  `bun:"number,notnull,unique"`
	Code     string `bun:"code,notnull"`
	Name     string `bun:"name,notnull"`
	Tick     int    `bun:"tick,notnull,default:0"`
	Finished bool   `bun:"finished,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
