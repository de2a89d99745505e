package pitchctl

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/pitchgate/internal/domain/gate"
	"github.com/okian/pitchgate/internal/domain/model"
)

// RevealView is what a client may display for a stored result.
type RevealView struct {
	Verified bool                  `json:"verified"`
	Visible  model.RevealedPitches `json:"visible"`
	Locked   []string              `json:"locked"`
}

// ReadPitches decodes either a bare result or a /api/generate response body.
func ReadPitches(path string) (model.Pitches, error) {
	data, err := readInput(path)
	if err != nil {
		return model.Pitches{}, err
	}
	var wrapped struct {
		Pitches *model.Pitches `json:"pitches"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Pitches != nil {
		return *wrapped.Pitches, nil
	}
	var p model.Pitches
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("decode pitches: %w", err)
	}
	return p, nil
}

// Reveal applies the verification gate to p.
func Reveal(p model.Pitches, verified bool) RevealView {
	return RevealView{
		Verified: verified,
		Visible:  gate.Reveal(p, verified),
		Locked:   gate.LockedSections(verified),
	}
}

// WriteReveal prints v as indented JSON.
func WriteReveal(w io.Writer, v RevealView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
