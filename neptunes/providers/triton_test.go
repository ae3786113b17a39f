package providers

import (
	"errors"
	"reflect"
	"testing"
)

const tritonFixture = `{
	"scanning_data": {
		"name": "Epsilon Eridani",
		"tick": 72,
		"game_over": 0,
		"players": {
			"2": {
				"alias": "Zarlax",
				"total_economy": 18,
				"total_industry": 12,
				"total_science": 6,
				"total_stars": 9,
				"total_strength": 340,
				"total_fleets": 4,
				"tech": {
					"scanning": {"level": 2},
					"propulsion": {"level": 3},
					"research": {"level": 1},
					"weapons": {"level": 2},
					"banking": {"level": 2},
					"manufacturing": {"level": 1}
				}
			},
			"1": {
				"alias": "Boru",
				"total_economy": 10,
				"total_industry": 8,
				"total_science": 4,
				"total_stars": 6,
				"total_strength": 210,
				"total_fleets": 3,
				"tech": {
					"scanning": {"level": 1},
					"propulsion": {"level": 1},
					"research": {"level": 2},
					"weapons": {"level": 1},
					"banking": {"level": 1},
					"manufacturing": {"level": 2}
				}
			}
		}
	}
}`

func TestTritonNormalizer_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *Snapshot
		wantErr bool
	}{
		{
			name:    "Success",
			payload: tritonFixture,
			want: &Snapshot{
				Name: "Epsilon Eridani",
				Tick: 72,
				Players: []PlayerSummary{
					{
						Alias: "Boru", Economy: 10, Industry: 8, Science: 4,
						Stars: 6, Fleet: 3, Ships: 210,
						Scanning: 1, Hyperspace: 1, Experimentation: 2,
						Weapons: 1, Banking: 1, Manufacturing: 2,
					},
					{
						Alias: "Zarlax", Economy: 18, Industry: 12, Science: 6,
						Stars: 9, Fleet: 4, Ships: 340,
						Scanning: 2, Hyperspace: 3, Experimentation: 1,
						Weapons: 2, Banking: 2, Manufacturing: 1,
					},
				},
			},
		},
		{
			name:    "GameOver",
			payload: `{"scanning_data": {"name": "Done", "tick": 500, "game_over": 1, "players": {}}}`,
			want:    &Snapshot{Name: "Done", Tick: 500, GameOver: true},
		},
		{
			name:    "NotJSON",
			payload: `<html>rate limited</html>`,
			wantErr: true,
		},
		{
			name:    "MissingScanningData",
			payload: `{"error": "api_error"}`,
			wantErr: true,
		},
		{
			name:    "MissingTick",
			payload: `{"scanning_data": {"name": "X", "game_over": 0, "players": {}}}`,
			wantErr: true,
		},
		{
			name:    "MissingPlayers",
			payload: `{"scanning_data": {"name": "X", "tick": 1, "game_over": 0}}`,
			wantErr: true,
		},
		{
			name:    "PlayerMissingAlias",
			payload: `{"scanning_data": {"name": "X", "tick": 1, "game_over": 0, "players": {"1": {"total_economy": 5}}}}`,
			wantErr: true,
		},
	}

	n := TritonNormalizer{}
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

// Normalizing the same payload twice must give identical output; player order
// comes from sorted upstream ids, not map iteration.
func TestTritonNormalizer_Deterministic(t *testing.T) {
	n := TritonNormalizer{}
	first, err := n.Normalize([]byte(tritonFixture))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := n.Normalize([]byte(tritonFixture))
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Normalize() not deterministic: run %d got %+v, want %+v", i, again, first)
		}
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Get(TagTriton); err != nil {
		t.Errorf("Get(%q) error = %v", TagTriton, err)
	}
	if _, err := r.Get(TagProteus); err != nil {
		t.Errorf("Get(%q) error = %v", TagProteus, err)
	}

	_, err := r.Get("andromeda")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("Get(unknown) error = %v, want ErrUnknownProvider", err)
	}

	if got := len(r.Tags()); got != 2 {
		t.Errorf("Tags() len = %d, want 2", got)
	}
}
