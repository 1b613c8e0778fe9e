package entities

// Severity grades how urgent an alert is
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityDanger
)

// String method for Severity enum
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityDanger:
		return "danger"
	default:
		return "unknown"
	}
}

// Alert is a dashboard notice surfaced to the operator
type Alert struct {
	ID       string
	Type     string
	Message  string
	Severity Severity
}
