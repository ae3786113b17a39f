package providers

import (
	"errors"
	"reflect"
	"testing"
)

const proteusFixture = `{
	"report": {
		"name": "Twin Suns",
		"turn": 36,
		"game_over": false,
		"teams": {
			"t2": {"name": "Crimson Pact"},
			"t1": {"name": "Azure League"}
		},
		"players": {
			"5": {
				"alias": "Kestrel",
				"team": "t1",
				"total_economy": 14,
				"total_industry": 9,
				"total_science": 5,
				"total_stars": 7,
				"total_carriers": 6,
				"total_ships": 280,
				"tech": {
					"scanning": {"level": 2},
					"propulsion": {"level": 2},
					"research": {"level": 3},
					"weapons": {"level": 1},
					"banking": {"level": 2},
					"manufacturing": {"level": 1}
				}
			}
		}
	}
}`

func TestProteusNormalizer_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *Snapshot
		wantErr bool
	}{
		{
			name:    "Success",
			payload: proteusFixture,
			want: &Snapshot{
				Name: "Twin Suns",
				Tick: 36,
				Teams: []TeamSummary{
					{Ref: "t1", Name: "Azure League"},
					{Ref: "t2", Name: "Crimson Pact"},
				},
				Players: []PlayerSummary{
					{
						Alias: "Kestrel", TeamRef: "t1",
						Economy: 14, Industry: 9, Science: 5,
						Stars: 7, Fleet: 6, Ships: 280,
						Scanning: 2, Hyperspace: 2, Experimentation: 3,
						Weapons: 1, Banking: 2, Manufacturing: 1,
					},
				},
			},
		},
		{
			name:    "NoTeams",
			payload: `{"report": {"name": "Solo", "turn": 1, "game_over": false, "players": {}}}`,
			want:    &Snapshot{Name: "Solo", Tick: 1},
		},
		{
			name:    "GameOver",
			payload: `{"report": {"name": "Over", "turn": 90, "game_over": true, "players": {}}}`,
			want:    &Snapshot{Name: "Over", Tick: 90, GameOver: true},
		},
		{
			name:    "MissingReport",
			payload: `{"scanning_data": {}}`,
			wantErr: true,
		},
		{
			name:    "MissingGameOver",
			payload: `{"report": {"name": "X", "turn": 2, "players": {}}}`,
			wantErr: true,
		},
		{
			name:    "TeamMissingName",
			payload: `{"report": {"name": "X", "turn": 2, "game_over": false, "teams": {"t1": {}}, "players": {}}}`,
			wantErr: true,
		},
		{
			name:    "PlayerMissingAlias",
			payload: `{"report": {"name": "X", "turn": 2, "game_over": false, "players": {"1": {"team": "t1"}}}}`,
			wantErr: true,
		},
	}

	n := ProteusNormalizer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Errorf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedSnapshot) {
					t.Errorf("Normalize() error = %v, want ErrMalformedSnapshot", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}
