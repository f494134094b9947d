package reconcile

import (
	"testing"
	"time"

	"go-timeclock/internal/anomaly"
	"go-timeclock/internal/punch"

	"github.com/stretchr/testify/assert"
)

var testPolicy = Policy{
	StandardShift:     8 * time.Hour,
	OvertimeThreshold: 0,
}

func day(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func window() Window {
	return Window{Start: day(0, 0), End: day(0, 0).Add(24 * time.Hour)}
}

func punches(events ...punch.ClockEvent) []punch.ClockEvent {
	return events
}

func in(t time.Time) punch.ClockEvent {
	return punch.ClockEvent{UserID: "113791012", Kind: punch.KindIn, Timestamp: t}
}

func out(t time.Time) punch.ClockEvent {
	return punch.ClockEvent{UserID: "113791012", Kind: punch.KindOut, Timestamp: t}
}

func TestClassify_NoPunchesIsAbsent(t *testing.T) {
	w := window()
	f, ok := Classify(w, testPolicy, nil)
	assert.True(t, ok)
	assert.Equal(t, anomaly.KindAbsent, f.Kind)
	assert.Equal(t, w.Start, f.AnchorTime)
	assert.Equal(t, testPolicy.StandardShift, f.Duration)
}

func TestClassify_ExactShiftNoAnomaly(t *testing.T) {
	// 09:05 in, 17:05 out: exactly eight hours worked.
	_, ok := Classify(window(), testPolicy, punches(in(day(9, 5)), out(day(17, 5))))
	assert.False(t, ok)
}

func TestClassify_ShortfallIsLate(t *testing.T) {
	// 09:40 in, 17:05 out: 7h25m worked, 35 minutes short.
	f, ok := Classify(window(), testPolicy, punches(in(day(9, 40)), out(day(17, 5))))
	assert.True(t, ok)
	assert.Equal(t, anomaly.KindLate, f.Kind)
	assert.Equal(t, day(9, 40), f.AnchorTime)
	assert.Equal(t, 35*time.Minute, f.Duration)
}

func TestClassify_Overtime(t *testing.T) {
	f, ok := Classify(window(), testPolicy, punches(in(day(9, 0)), out(day(19, 30))))
	assert.True(t, ok)
	assert.Equal(t, anomaly.KindOvertime, f.Kind)
	assert.Equal(t, day(19, 30), f.AnchorTime)
	assert.Equal(t, 2*time.Hour+30*time.Minute, f.Duration)
}

func TestClassify_OvertimeThresholdSuppressesSmallExcess(t *testing.T) {
	p := Policy{StandardShift: 8 * time.Hour, OvertimeThreshold: 30 * time.Minute}

	_, ok := Classify(window(), p, punches(in(day(9, 0)), out(day(17, 20))))
	assert.False(t, ok, "20 minutes over is within the threshold")

	f, ok := Classify(window(), p, punches(in(day(9, 0)), out(day(17, 45))))
	assert.True(t, ok)
	assert.Equal(t, anomaly.KindOvertime, f.Kind)
	assert.Equal(t, 45*time.Minute, f.Duration)
}

func TestClassify_MissingOut(t *testing.T) {
	w := window()

	// in at 09:00, never out: window end leaves 7h beyond the shift
	f, ok := Classify(w, testPolicy, punches(in(day(9, 0))))
	assert.True(t, ok)
	assert.Equal(t, anomaly.KindMissingOut, f.Kind)
	assert.Equal(t, w.End, f.AnchorTime)
	assert.Equal(t, 7*time.Hour, f.Duration)

	// in late enough that end-in < shift: duration clips to zero
	f, ok = Classify(w, testPolicy, punches(in(day(20, 0))))
	assert.True(t, ok)
	assert.Equal(t, anomaly.KindMissingOut, f.Kind)
	assert.Equal(t, time.Duration(0), f.Duration)
}

func TestClassify_OutOnlyClassifiesAsAbsent(t *testing.T) {
	w := window()
	f, ok := Classify(w, testPolicy, punches(out(day(17, 0))))
	assert.True(t, ok)
	assert.Equal(t, anomaly.KindAbsent, f.Kind)
	assert.Equal(t, w.Start, f.AnchorTime)
}

func TestClassify_CollapsesToExtremes(t *testing.T) {
	// several punches, only earliest in / latest out matter
	f, ok := Classify(window(), testPolicy, punches(
		in(day(10, 0)),
		in(day(9, 40)),
		out(day(12, 0)),
		out(day(17, 5)),
	))
	assert.True(t, ok)
	assert.Equal(t, anomaly.KindLate, f.Kind)
	assert.Equal(t, day(9, 40), f.AnchorTime)
	assert.Equal(t, 35*time.Minute, f.Duration)
}

func TestClassify_Deterministic(t *testing.T) {
	set := punches(in(day(9, 40)), out(day(17, 5)))
	first, ok1 := Classify(window(), testPolicy, set)
	second, ok2 := Classify(window(), testPolicy, set)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}
