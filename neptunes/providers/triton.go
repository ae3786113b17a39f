package providers

import (
	"encoding/json"
	"fmt"
	"sort"
)

// TritonNormalizer parses the Triton API shape: everything nested under
// "scanning_data", players keyed by upstream id, tech levels as objects.
// Triton has no team concept, so the canonical team list is empty.
type TritonNormalizer struct{}

type tritonPayload struct {
	ScanningData *tritonScanningData `json:"scanning_data"`
}

type tritonScanningData struct {
	Name     *string                 `json:"name"`
	Tick     *int                    `json:"tick"`
	GameOver *int                    `json:"game_over"`
	Players  map[string]tritonPlayer `json:"players"`
}

type tritonPlayer struct {
	Alias         *string               `json:"alias"`
	TotalEconomy  int                   `json:"total_economy"`
	TotalIndustry int                   `json:"total_industry"`
	TotalScience  int                   `json:"total_science"`
	TotalStars    int                   `json:"total_stars"`
	TotalStrength int                   `json:"total_strength"`
	TotalFleets   int                   `json:"total_fleets"`
	Tech          map[string]tritonTech `json:"tech"`
}

type tritonTech struct {
	Level int `json:"level"`
}

func (TritonNormalizer) Normalize(payload []byte) (*Snapshot, error) {
	var raw tritonPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if raw.ScanningData == nil {
		return nil, malformed("scanning_data")
	}

	data := raw.ScanningData
	if data.Name == nil {
		return nil, malformed("scanning_data.name")
	}
	if data.Tick == nil {
		return nil, malformed("scanning_data.tick")
	}
	if data.GameOver == nil {
		return nil, malformed("scanning_data.game_over")
	}
	if data.Players == nil {
		return nil, malformed("scanning_data.players")
	}

	snap := &Snapshot{
		Name:     *data.Name,
		Tick:     *data.Tick,
		GameOver: *data.GameOver != 0,
	}

	// Map iteration order is random; sort by upstream id so repeated
	// normalization of the same payload is byte-identical.
	ids := make([]string, 0, len(data.Players))
	for id := range data.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := data.Players[id]
		if p.Alias == nil {
			return nil, malformed(fmt.Sprintf("players.%s.alias", id))
		}
		snap.Players = append(snap.Players, PlayerSummary{
			Alias:    *p.Alias,
			Economy:  p.TotalEconomy,
			Industry: p.TotalIndustry,
			Science:  p.TotalScience,
			Stars:    p.TotalStars,
			Fleet:    p.TotalFleets,
			Ships:    p.TotalStrength,
			// Triton tech naming differs from ours in two places.
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
