package reconcile

import "time"

// Policy carries the attendance constants. Both values arrive from
// configuration: deployments have run anything from a seconds-scale shift
// in test rigs to the usual eight hours, so nothing here is hardcoded.
type Policy struct {
	StandardShift     time.Duration
	OvertimeThreshold time.Duration
}
