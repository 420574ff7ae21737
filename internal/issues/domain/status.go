package domain

// Issue workflow statuses. The intended path is
// open -> assigned -> in_progress -> resolved; resolved is terminal.
const (
	StatusOpen       = "open"
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusAssigned, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// CanTransition reports whether a status change is legal. Forward steps
// follow the workflow; any status may jump straight to resolved (admin
// override). Writing the current status back is a no-op and allowed.
// There is no path out of resolved.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	if from == StatusResolved {
		return false
	}
	if to == StatusResolved {
		return true
	}
	switch from {
	case StatusOpen:
		return to == StatusAssigned
	case StatusAssigned:
		return to == StatusInProgress
	}
	return false
}
