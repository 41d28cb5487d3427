package engine

import (
	"fmt"
	"runtime"
)

// Monitor carries the optional progress callback and cancellation flag for
// one planning job. A nil Monitor, or nil fields, disable the respective
// surface. Progress granularity is one stage per container decision; the
// packer itself only reads the cancellation flag at its yield points.
type Monitor struct {
	// OnStage receives a human-readable stage description between
	// container boundaries.
	OnStage func(stage string)

	// Cancelled is polled cooperatively. Once it returns true the engine
	// stops committing and returns the results gathered so far plus the
	// remaining boxes as unplaced. Commits are never rolled back.
	Cancelled func() bool
}

func (m *Monitor) stage(format string, args ...any) {
	if m == nil || m.OnStage == nil {
		return
	}
	m.OnStage(fmt.Sprintf(format, args...))
}

func (m *Monitor) cancelled() bool {
	return m != nil && m.Cancelled != nil && m.Cancelled()
}

// yield is the packer's sole suspension point: it surrenders the processor
// so a host runtime can run queued work, then reports the cancel flag.
func (m *Monitor) yield() bool {
	runtime.Gosched()
	return m.cancelled()
}
