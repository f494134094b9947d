package reconcile

import (
	"time"

	"go-timeclock/internal/anomaly"
	"go-timeclock/internal/punch"
)

// Window is the closed-open [Start, End) range being reconciled.
type Window struct {
	Start time.Time
	End   time.Time
}

type Finding struct {
	Kind       string
	AnchorTime time.Time
	Duration   time.Duration
}

// Classify reduces a user's punches in the window to at most one finding
// using earliest-In / latest-Out semantics. Multiple punches collapse to a
// single candidate pair; this is not a multi-session timesheet. Pure: same
// punches and policy always yield the same result.
func Classify(w Window, p Policy, punches []punch.ClockEvent) (Finding, bool) {
	var (
		earliestIn time.Time
		latestOut  time.Time
		hasIn      bool
		hasOut     bool
	)
	for _, e := range punches {
		switch e.Kind {
		case punch.KindIn:
			if !hasIn || e.Timestamp.Before(earliestIn) {
				earliestIn = e.Timestamp
				hasIn = true
			}
		case punch.KindOut:
			if !hasOut || e.Timestamp.After(latestOut) {
				latestOut = e.Timestamp
				hasOut = true
			}
		}
	}

	// No In means the shift never started. An Out-only window gives us
	// nothing to pair it with, so it classifies the same as no punches.
	if !hasIn {
		return Finding{
			Kind:       anomaly.KindAbsent,
			AnchorTime: w.Start,
			Duration:   p.StandardShift,
		}, true
	}

	if !hasOut {
		over := w.End.Sub(earliestIn) - p.StandardShift
		if over < 0 {
			over = 0
		}
		return Finding{
			Kind:       anomaly.KindMissingOut,
			AnchorTime: w.End,
			Duration:   over,
		}, true
	}

	worked := latestOut.Sub(earliestIn)
	if worked < p.StandardShift {
		return Finding{
			Kind:       anomaly.KindLate,
			AnchorTime: earliestIn,
			Duration:   p.StandardShift - worked,
		}, true
	}
	if worked-p.StandardShift > p.OvertimeThreshold {
		return Finding{
			Kind:       anomaly.KindOvertime,
			AnchorTime: latestOut,
			Duration:   worked - p.StandardShift,
		}, true
	}
	return Finding{}, false
}
