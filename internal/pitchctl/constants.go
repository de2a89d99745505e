package pitchctl

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Report configuration constants.
const (
	PercentageMultiplier = 100
	progressBarWidth     = 20
)
