package premium

// =============================================================================
// DURATION RESOLUTION - Ordered fallback chains
// =============================================================================

// Resolver extracts a candidate span from a shift, or reports none.
type Resolver func(ShiftRecord) (Span, bool)

// ResolverChain tries resolvers in order and stops at the first hit.
// A shift no resolver can serve contributes zero hours.
type ResolverChain []Resolver

func (c ResolverChain) Resolve(s ShiftRecord) (Span, bool) {
	for _, r := range c {
		if sp, ok := r(s); ok {
			return sp, true
		}
	}
	return Span{}, false
}

// ActualTimes uses the recorded start/end when both are present.
func ActualTimes(s ShiftRecord) (Span, bool) {
	return ParseSpan(s.ActualStart, s.ActualEnd)
}

// PlannedTimes uses the rostered start/end when both are present.
func PlannedTimes(s ShiftRecord) (Span, bool) {
	return ParseSpan(s.PlannedStart, s.PlannedEnd)
}

// CommittedPlannedTimes uses the rostered times only for shifts that are
// a confirmed obligation.
func CommittedPlannedTimes(s ShiftRecord) (Span, bool) {
	if !s.Status.Committed() {
		return Span{}, false
	}
	return PlannedTimes(s)
}

var (
	// WorkedTimes resolves worked and covered shifts: actual, then planned
	// for committed statuses.
	WorkedTimes = ResolverChain{ActualTimes, CommittedPlannedTimes}

	// AbsenceTimes resolves the hours an absence stands for: planned, then actual.
	AbsenceTimes = ResolverChain{PlannedTimes, ActualTimes}
)
