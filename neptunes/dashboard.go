package neptunes

import (
	"github.com/Macro303/Neptunes-Pride/neptunes/database"
	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
	"github.com/Macro303/Neptunes-Pride/neptunes/ledger"
	"github.com/Macro303/Neptunes-Pride/neptunes/reconcile"
	"github.com/Macro303/Neptunes-Pride/neptunes/services"
)

func New(cfg Config, version string, commit string) *Dashboard {
	return &Dashboard{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// Dashboard carries the wired-up application: store handles, repositories,
// the reconciliation engine and scheduler, and the read-side services.
type Dashboard struct {
	Cfg     Config
	Version string
	Commit  string

	DB *database.DB

	GameRepository   repositories.GameRepository
	TeamRepository   repositories.TeamRepository
	PlayerRepository repositories.PlayerRepository
	CycleRepository  repositories.CycleRepository

	Engine    *reconcile.Engine
	Scheduler *reconcile.Scheduler
	Ledger    *ledger.Ledger
	Search    *services.SearchService
}

// TrackedGames maps the configured games into the scheduler's view of them.
func (d *Dashboard) TrackedGames() []reconcile.TrackedGame {
	tracked := make([]reconcile.TrackedGame, 0, len(d.Cfg.Games))
	for _, g := range d.Cfg.Games {
		tracked = append(tracked, reconcile.TrackedGame{
			Number:   g.Number,
			Code:     g.Code,
			Provider: g.Provider,
		})
	}
	return tracked
}
