package providers

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ProteusNormalizer parses the Proteus API shape: a "report" wrapper, an
// explicit team map, and players referencing their team by key. Fleet
// strength is split into carriers and ships.
type ProteusNormalizer struct{}

type proteusPayload struct {
	Report *proteusReport `json:"report"`
}

type proteusReport struct {
	Name     *string                  `json:"name"`
	Turn     *int                     `json:"turn"`
	GameOver *bool                    `json:"game_over"`
	Teams    map[string]proteusTeam   `json:"teams"`
	Players  map[string]proteusPlayer `json:"players"`
}

type proteusTeam struct {
	Name *string `json:"name"`
}

type proteusPlayer struct {
	Alias         *string               `json:"alias"`
	Team          string                `json:"team"`
	TotalEconomy  int                   `json:"total_economy"`
	TotalIndustry int                   `json:"total_industry"`
	TotalScience  int                   `json:"total_science"`
	TotalStars    int                   `json:"total_stars"`
	TotalCarriers int                   `json:"total_carriers"`
	TotalShips    int                   `json:"total_ships"`
	Tech          map[string]proteusLvl `json:"tech"`
}

type proteusLvl struct {
	Level int `json:"level"`
}

func (ProteusNormalizer) Normalize(payload []byte) (*Snapshot, error) {
	var raw proteusPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if raw.Report == nil {
		return nil, malformed("report")
	}

	report := raw.Report
	if report.Name == nil {
		return nil, malformed("report.name")
	}
	if report.Turn == nil {
		return nil, malformed("report.turn")
	}
	if report.GameOver == nil {
		return nil, malformed("report.game_over")
	}
	if report.Players == nil {
		return nil, malformed("report.players")
	}

	snap := &Snapshot{
		Name:     *report.Name,
		Tick:     *report.Turn,
		GameOver: *report.GameOver,
	}

	refs := make([]string, 0, len(report.Teams))
	for ref := range report.Teams {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	for _, ref := range refs {
		t := report.Teams[ref]
		if t.Name == nil {
			return nil, malformed(fmt.Sprintf("teams.%s.name", ref))
		}
		snap.Teams = append(snap.Teams, TeamSummary{Ref: ref, Name: *t.Name})
	}

	ids := make([]string, 0, len(report.Players))
	for id := range report.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := report.Players[id]
		if p.Alias == nil {
			return nil, malformed(fmt.Sprintf("players.%s.alias", id))
		}
		snap.Players = append(snap.Players, PlayerSummary{
			Alias:           *p.Alias,
			TeamRef:         p.Team,
			Economy:         p.TotalEconomy,
			Industry:        p.TotalIndustry,
			Science:         p.TotalScience,
			Stars:           p.TotalStars,
			Fleet:           p.TotalCarriers,
			Ships:           p.TotalShips,
			Scanning:        p.Tech["scanning"].Level,
			Hyperspace:      p.Tech["propulsion"].Level,
			Experimentation: p.Tech["research"].Level,
			Weapons:         p.Tech["weapons"].Level,
			Banking:         p.Tech["banking"].Level,
			Manufacturing:   p.Tech["manufacturing"].Level,
		})
	}

	return snap, nil
}
