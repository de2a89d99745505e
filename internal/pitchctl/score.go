package pitchctl

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/pitchgate/internal/domain/gate"
	"github.com/okian/pitchgate/internal/domain/model"
)

// ReadForm decodes a pitch form from a JSON file. "-" reads stdin.
func ReadForm(path string) (model.PitchForm, error) {
	var form model.PitchForm
	data, err := readInput(path)
	if err != nil {
		return form, fmt.Errorf("%w: %w", ErrReadForm, err)
	}
	if err := json.Unmarshal(data, &form); err != nil {
		return form, fmt.Errorf("%w: %s: %w", ErrReadForm, path, err)
	}
	return form, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// Score evaluates form against the gate, the same way the server does.
func Score(form model.PitchForm, minScore int) (gate.Preview, error) {
	g := gate.NewGeneration(minScore)
	preview := g.Preview(form)
	_, err := g.Evaluate(form)
	return preview, err
}

// WriteReport renders a preview as text. gateErr is the result of the
// generation gate for the same form.
func WriteReport(w io.Writer, p gate.Preview, gateErr error) error {
	var b strings.Builder
	sparkle := ""
	if p.Sparkle {
		sparkle = " *"
	}
	fmt.Fprintf(&b, "Score   %3d%% %s %s%s\n", p.Percentage, bar(p.Percentage), p.Label, sparkle)
	fmt.Fprintf(&b, "Points  %d/%d (rules %s)\n\n", p.EarnedPoints, p.MaxPoints, p.RulesVersion)

	for _, f := range p.Fields {
		mark := "[ ]"
		if f.Completed {
			mark = "[x]"
		}
		kind := ""
		if f.Optional {
			kind = " (bonus)"
		}
		fmt.Fprintf(&b, "%s %-18s %2d/%-2d %s%s\n", mark, f.Label, f.EarnedPoints, f.Points, f.Hint, kind)
	}

	b.WriteString("\n")
	if gateErr != nil {
		fmt.Fprintf(&b, "Generation blocked (minimum %d%%): %s\n", p.MinScore, gateErr.Error())
	} else {
		fmt.Fprintf(&b, "Generation allowed (minimum %d%%)\n", p.MinScore)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func bar(pct int) string {
	filled := pct * progressBarWidth / PercentageMultiplier
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled) + "]"
}
