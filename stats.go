package dpll

import "time"

// Stats accumulates optional diagnostic counters: how many decisions and
// implications the search made, and how much wall-clock time went into
// each phase. It is a passive collaborator — nothing here influences the
// verdict, and a caller that never looks at Stats gets an identical answer.
type Stats struct {
	// DecidedDuringIngestion is true when ingestion alone (an empty clause,
	// or a unit clause contradicting an earlier one) already determined
	// UNSAT, so the solve loop never ran.
	DecidedDuringIngestion bool
	NumDecisions           int64
	NumImplications        int64

	BCPTime       time.Duration
	DecideTime    time.Duration
	AnalyzeTime   time.Duration
	BacktrackTime time.Duration
}

// timeSince adds the elapsed time since start to *acc. Small helper so the
// phase-boundary hooks in solver.go read as one line each.
func timeSince(acc *time.Duration, start time.Time) {
	*acc += time.Since(start)
}
