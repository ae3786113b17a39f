package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Cycle is one player's statistics at one game tick. Rows are append-only:
// reconciliation never rewrites the counters of a tick it has already seen,
// and (player_id, cycle) is unique.
type Cycle struct {
	bun.BaseModel `bun:"table:cycles,alias:c"`

	ID       int64 `bun:"id,pk,autoincrement"`
	PlayerID int64 `bun:"player_id,notnull"`
	Cycle    int   `bun:"cycle,notnull"`

	Economy  int `bun:"economy,notnull,default:0"`
	Industry int `bun:"industry,notnull,default:0"`
	Science  int `bun:"science,notnull,default:0"`
	Stars    int `bun:"stars,notnull,default:0"`
	Fleet    int `bun:"fleet,notnull,default:0"`
	Ships    int `bun:"ships,notnull,default:0"`

	// Technology levels
	Scanning        int `bun:"scanning,notnull,default:0"`
	Hyperspace      int `bun:"hyperspace,notnull,default:0"`
	Experimentation int `bun:"experimentation,notnull,default:0"`
	Weapons         int `bun:"weapons,notnull,default:0"`
	Banking         int `bun:"banking,notnull,default:0"`
	Manufacturing   int `bun:"manufacturing,notnull,default:0"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
