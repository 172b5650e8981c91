package domain

// Payload keys shared by every transport
const (
	FieldScreenTime = "screen_time"
	FieldBreaks     = "breaks"
	FieldLastBreak  = "last_break"
	FieldMood       = "mood"
	FieldSleep      = "sleep"
)

// Fields lists the payload keys in the order they are asked and documented
var Fields = []string{FieldScreenTime, FieldBreaks, FieldLastBreak, FieldMood, FieldSleep}

// Defaults applied when a payload key is missing
const (
	DefaultScreenTime = 0   // minutes
	DefaultBreaks     = 0   // count
	DefaultLastBreak  = 120 // minutes since last break
	DefaultMood       = 3   // 1 (worst) .. 5 (best)
	DefaultSleep      = 7   // hours
)

// RiskInputs is the immutable set of signals for one assessment.
// Values are not range-checked: out-of-range input is scored as-is.
type RiskInputs struct {
	ScreenTime float64 // minutes
	Breaks     float64
	LastBreak  float64 // minutes since last break
	Mood       float64
	Sleep      float64 // hours
}

// DefaultRiskInputs returns the inputs used when a payload carries no keys
func DefaultRiskInputs() RiskInputs {
	return RiskInputs{
		ScreenTime: DefaultScreenTime,
		Breaks:     DefaultBreaks,
		LastBreak:  DefaultLastBreak,
		Mood:       DefaultMood,
		Sleep:      DefaultSleep,
	}
}

// RiskTier is the discrete burnout risk. LOW < MEDIUM < HIGH.
type RiskTier int

const (
	RiskLow RiskTier = iota
	RiskMedium
	RiskHigh
)

var tierLabels = [...]string{"low", "medium", "high"}

// Label returns "low", "medium" or "high"
func (t RiskTier) Label() string {
	switch {
	case t <= RiskLow:
		return tierLabels[RiskLow]
	case t >= RiskHigh:
		return tierLabels[RiskHigh]
	default:
		return tierLabels[t]
	}
}

// String implements fmt.Stringer
func (t RiskTier) String() string {
	return t.Label()
}

// Valid reports whether t is one of the three defined tiers
func (t RiskTier) Valid() bool {
	return t >= RiskLow && t <= RiskHigh
}

// PredictionResult is the success envelope returned to clients
type PredictionResult struct {
	BurnoutRisk     RiskTier `json:"burnout_risk"`
	RiskLevel       string   `json:"risk_level"`
	Recommendations []string `json:"recommendations"`
}

// ExamplePayload is the documented request shape advertised by the info endpoint
func ExamplePayload() map[string]any {
	return map[string]any{
		FieldScreenTime: 180,
		FieldBreaks:     1,
		FieldLastBreak:  90,
		FieldMood:       3,
		FieldSleep:      7,
	}
}
