package review

// transitions is the fixed adjacency table governing status changes.
// approved → rejected allows correcting a mistaken approval; rejected
// may be re-opened either directly to approved or back to submitted.
var transitions = map[Status][]Status{
	StatusSubmitted: {StatusApproved, StatusRejected},
	StatusApproved:  {StatusRejected},
	StatusRejected:  {StatusApproved, StatusSubmitted},
}

// IsValidTransition reports whether current → next is a legal transition.
// Same-state transitions are always illegal regardless of the table.
func IsValidTransition(current, next Status) bool {
	if current == next {
		return false
	}
	for _, allowed := range transitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AvailableTransitions returns the statuses reachable from the current one.
// The returned slice is a copy; callers may mutate it freely.
func AvailableTransitions(current Status) []Status {
	allowed, ok := transitions[current]
	if !ok {
		return []Status{}
	}
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}
