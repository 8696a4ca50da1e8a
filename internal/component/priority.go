package component

import "fmt"

// Priority classifies loads for shedding and restoration decisions.
// Lower values are more important: CRITICAL loads are shed last and
// restored first.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityDeferrable
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "CRITICAL"
	case PriorityHigh:
		return "HIGH"
	case PriorityDeferrable:
		return "DEFERRABLE"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// ParsePriority converts a scenario-file priority label. Accepted values
// are "critical", "high" and "deferrable" (case-sensitive, as written in
// scenario files); the empty string defaults to deferrable.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "critical":
		return PriorityCritical, nil
	case "high":
		return PriorityHigh, nil
	case "deferrable", "":
		return PriorityDeferrable, nil
	}
	return 0, fmt.Errorf("unknown load priority %q", s)
}
