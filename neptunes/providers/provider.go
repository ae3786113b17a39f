// Package providers converts raw upstream game-state payloads into the one
// canonical snapshot shape the reconciliation engine consumes. Each supported
// provider gets its own normalizer, selected by the provider tag from config;
// nothing downstream ever sees a provider-specific field.
package providers

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSnapshot marks a payload missing required fields or of the
	// wrong shape. Not retryable; the fetch cycle for that game is skipped.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	// ErrUnknownProvider marks a provider tag with no registered normalizer.
	// A configuration error, surfaced at startup.
	ErrUnknownProvider = errors.New("unknown provider")
)

const (
	TagTriton  = "triton"
	TagProteus = "proteus"
)

// Snapshot is the canonical state capture of one game at one tick.
type Snapshot struct {
	Name     string
	Tick     int
	GameOver bool
	Teams    []TeamSummary
	Players  []PlayerSummary
}

// TeamSummary carries the provider's team reference and display name.
type TeamSummary struct {
	Ref  string
	Name string
}

// PlayerSummary is one player's per-tick statistics tuple.
type PlayerSummary struct {
	Alias   string
	TeamRef string

	Economy  int
	Industry int
	Science  int
	Stars    int
	Fleet    int
	Ships    int

	Scanning        int
	Hyperspace      int
	Experimentation int
	Weapons         int
	Banking         int
	Manufacturing   int
}

// Normalizer parses one provider's wire shape. Pure transform, no side
// effects.
type Normalizer interface {
	Normalize(payload []byte) (*Snapshot, error)
}

// Registry maps provider tags to their normalizers.
type Registry struct {
	normalizers map[string]Normalizer
}

func NewRegistry() *Registry {
	return &Registry{
		normalizers: map[string]Normalizer{
			TagTriton:  TritonNormalizer{},
			TagProteus: ProteusNormalizer{},
		},
	}
}

func (r *Registry) Get(tag string) (Normalizer, error) {
	n, ok := r.normalizers[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, tag)
	}
	return n, nil
}

// Tags lists the registered provider tags, for startup config validation.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.normalizers))
	for tag := range r.normalizers {
		tags = append(tags, tag)
	}
	return tags
}

func malformed(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedSnapshot, field)
}
