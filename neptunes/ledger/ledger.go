// Package ledger is the read side of the cycle history: latest record,
// ascending history, and the derived per-cycle production values.
package ledger

import (
	"context"

	"github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
)

// Production holds the derived resource-per-cycle values. Computed on read,
// never stored; identical inputs always produce identical output.
type Production struct {
	EconomyPerCycle  int `json:"economy_per_cycle"`
	IndustryPerCycle int `json:"industry_per_cycle"`
	SciencePerCycle  int `json:"science_per_cycle"`
}

type Ledger struct {
	cycles     repositories.CycleRepository
	cycleHours int
}

// New builds a ledger over the cycle store. cycleHours is the game cycle
// length (hours per tick), injected once at startup.
func New(cycles repositories.CycleRepository, cycleHours int) *Ledger {
	return &Ledger{cycles: cycles, cycleHours: cycleHours}
}

// Latest returns the player's most recent record, or
// repositories.ErrNotFound when the player has no history yet.
func (l *Ledger) Latest(ctx context.Context, playerID int64) (*models.Cycle, error) {
	return l.cycles.GetLatest(ctx, playerID)
}

// History returns all of the player's records ascending by cycle number.
func (l *Ledger) History(ctx context.Context, playerID int64) ([]*models.Cycle, error) {
	return l.cycles.GetHistory(ctx, playerID)
}

// Production derives the per-cycle output from a record's raw counters.
func (l *Ledger) Production(c *models.Cycle) Production {
	return Production{
		EconomyPerCycle:  c.Economy * c.Banking * l.cycleHours,
		IndustryPerCycle: c.Industry * c.Manufacturing * l.cycleHours,
		SciencePerCycle:  c.Science * c.Experimentation * l.cycleHours,
	}
}
