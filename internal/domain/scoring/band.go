package scoring

// Upper bounds (inclusive) of the score bands.
const (
	WeakMax         = 40
	GettingThereMax = 70
	StrongMax       = 90
	// SparkleMin is the lowest score that earns the excellent highlight.
	SparkleMin = 91
)

// Band identifiers.
const (
	BandWeak      = "weak"
	BandFair      = "fair"
	BandStrong    = "strong"
	BandExcellent = "excellent"
)

// Band is the feedback tier for a score.
type Band struct {
	Name    string `json:"band"`
	Label   string `json:"label"`
	Sparkle bool   `json:"sparkle"`
}

// BandFor maps a percentage to its feedback band.
func BandFor(pct int) Band {
	switch {
	case pct <= WeakMax:
		return Band{Name: BandWeak, Label: "Weak pitch"}
	case pct <= GettingThereMax:
		return Band{Name: BandFair, Label: "Getting there"}
	case pct <= StrongMax:
		return Band{Name: BandStrong, Label: "Strong pitch"}
	default:
		return Band{Name: BandExcellent, Label: "Excellent pitch", Sparkle: pct >= SparkleMin}
	}
}
