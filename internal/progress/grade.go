package progress

// Severity is the semantic band used by clients for colour coding.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// GradeFromScore maps a 0-100 score onto a letter grade and its severity
// band. Band lower bounds are inclusive: 90 is an A, 89 a B.
func GradeFromScore(score float64) (string, Severity) {
	switch {
	case score >= 90:
		return "A", SeveritySuccess
	case score >= 80:
		return "B", SeveritySuccess
	case score >= 70:
		return "C", SeverityWarning
	case score >= 60:
		return "D", SeverityWarning
	default:
		return "F", SeverityError
	}
}

// SeverityFromProgress bands a progress value without assigning a letter.
// This is a distinct policy from GradeFromScore and the two must not be
// merged: progress banding has four tiers with an info band.
func SeverityFromProgress(p int) Severity {
	switch {
	case p >= 80:
		return SeveritySuccess
	case p >= 60:
		return SeverityInfo
	case p >= 40:
		return SeverityWarning
	default:
		return SeverityError
	}
}
