package reconcile

import (
	"context"
	"sync"

	"github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
)

// memStore is an in-memory stand-in for the four repositories, enforcing the
// same uniqueness rules the real schema does: game number, (game, name) for
// teams, (game, alias) for players and (player, cycle) for cycle records.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	games   []*models.Game
	teams   []*models.Team
	players []*models.Player
	cycles  []*models.Cycle

	cycleErr error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) Games() repositories.GameRepository     { return memGames{s} }
func (s *memStore) Teams() repositories.TeamRepository     { return memTeams{s} }
func (s *memStore) Players() repositories.PlayerRepository { return memPlayers{s} }
func (s *memStore) Cycles() repositories.CycleRepository   { return memCycles{s} }

type memGames struct{ s *memStore }

func (r memGames) Create(_ context.Context, game *models.Game) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.games {
		if g.Number == game.Number {
			return false, nil
		}
	}
	game.ID = r.s.id()
	r.s.games = append(r.s.games, game)
	return true, nil
}

func (r memGames) GetByID(_ context.Context, id int64) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.games {
		if g.ID == id {
			copied := *g
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memGames) GetByNumber(_ context.Context, number int64) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.games {
		if g.Number == number {
			copied := *g
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memGames) GetLatest(_ context.Context) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.games) == 0 {
		return nil, repositories.ErrNotFound
	}
	copied := *r.s.games[len(r.s.games)-1]
	return &copied, nil
}

func (r memGames) GetAll(_ context.Context) ([]*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*models.Game(nil), r.s.games...), nil
}

func (r memGames) UpdateHeader(_ context.Context, id int64, name string, tick int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.games {
		if g.ID == id {
			g.Name = name
			g.Tick = tick
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r memGames) MarkFinished(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.games {
		if g.ID == id {
			g.Finished = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r memGames) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, g := range r.s.games {
		if g.ID == id {
			r.s.games = append(r.s.games[:i], r.s.games[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memTeams struct{ s *memStore }

func (r memTeams) GetByID(_ context.Context, id int64) (*models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.teams {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memTeams) GetByName(_ context.Context, gameID int64, name string) (*models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.teams {
		if t.GameID == gameID && t.Name == name {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memTeams) GetByGame(_ context.Context, gameID int64) ([]*models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var teams []*models.Team
	for _, t := range r.s.teams {
		if t.GameID == gameID {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

func (r memTeams) GetOrCreate(_ context.Context, gameID int64, name string) (*models.Team, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.teams {
		if t.GameID == gameID && t.Name == name {
			copied := *t
			return &copied, false, nil
		}
	}
	team := &models.Team{ID: r.s.id(), GameID: gameID, Name: name}
	r.s.teams = append(r.s.teams, team)
	copied := *team
	return &copied, true, nil
}

func (r memTeams) Rename(_ context.Context, id int64, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.teams {
		if t.ID == id {
			t.Name = name
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memPlayers struct{ s *memStore }

func (r memPlayers) Create(_ context.Context, player *models.Player) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.players {
		if p.GameID == player.GameID && p.Alias == player.Alias {
			return false, nil
		}
	}
	player.ID = r.s.id()
	r.s.players = append(r.s.players, player)
	return true, nil
}

func (r memPlayers) GetByID(_ context.Context, id int64) (*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.players {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memPlayers) GetByAlias(_ context.Context, gameID int64, alias string) (*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.players {
		if p.GameID == gameID && p.Alias == alias {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memPlayers) GetByGame(_ context.Context, gameID int64) ([]*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var players []*models.Player
	for _, p := range r.s.players {
		if p.GameID == gameID {
			players = append(players, p)
		}
	}
	return players, nil
}

func (r memPlayers) GetByTeam(_ context.Context, teamID int64) ([]*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var players []*models.Player
	for _, p := range r.s.players {
		if p.TeamID == teamID {
			players = append(players, p)
		}
	}
	return players, nil
}

func (r memPlayers) Update(_ context.Context, id int64, teamID int64, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.players {
		if p.ID == id {
			p.TeamID = teamID
			p.Name = name
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memCycles struct{ s *memStore }

func (r memCycles) Create(_ context.Context, cycle *models.Cycle) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.cycleErr != nil {
		return false, r.s.cycleErr
	}
	for _, c := range r.s.cycles {
		if c.PlayerID == cycle.PlayerID && c.Cycle == cycle.Cycle {
			return false, nil
		}
	}
	cycle.ID = r.s.id()
	r.s.cycles = append(r.s.cycles, cycle)
	return true, nil
}

func (r memCycles) Exists(_ context.Context, playerID int64, tick int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.cycles {
		if c.PlayerID == playerID && c.Cycle == tick {
			return true, nil
		}
	}
	return false, nil
}

func (r memCycles) GetLatest(_ context.Context, playerID int64) (*models.Cycle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *models.Cycle
	for _, c := range r.s.cycles {
		if c.PlayerID == playerID && (latest == nil || c.Cycle > latest.Cycle) {
			latest = c
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r memCycles) GetHistory(_ context.Context, playerID int64) ([]*models.Cycle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var cycles []*models.Cycle
	for _, c := range r.s.cycles {
		if c.PlayerID == playerID {
			cycles = append(cycles, c)
		}
	}
	for i := 1; i < len(cycles); i++ {
		for j := i; j > 0 && cycles[j-1].Cycle > cycles[j].Cycle; j-- {
			cycles[j-1], cycles[j] = cycles[j], cycles[j-1]
		}
	}
	return cycles, nil
}
