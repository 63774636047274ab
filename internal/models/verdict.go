package models

// Severity grades a viability failure.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ViabilityVerdict is the outcome of the crop viability check. A negative
// verdict is a first-class result, not a system failure - callers surface
// the reason and the alternative crops to the user.
type ViabilityVerdict struct {
	Viable         bool     `json:"viable"`
	Reason         string   `json:"reason"`
	Recommendation string   `json:"recommendation"`
	Severity       Severity `json:"severity"`
	Alternatives   []string `json:"alternative_crops,omitempty"`
}
