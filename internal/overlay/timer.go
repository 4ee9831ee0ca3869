package overlay

import "time"

// Clock schedules callbacks. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// slotTimer owns at most one pending callback. Arming replaces the pending
// one. A callback that already fired but lost the race with Arm or Cancel
// sees a stale sequence through current and must do nothing.
// Not safe for concurrent use; the controller lock guards it.
type slotTimer struct {
	clock   Clock
	pending Timer
	seq     uint64
}

func (s *slotTimer) arm(d time.Duration, fire func(seq uint64)) {
	s.stop()
	s.seq++
	seq := s.seq
	s.pending = s.clock.AfterFunc(d, func() { fire(seq) })
}

func (s *slotTimer) cancel() {
	s.stop()
	s.seq++
}

func (s *slotTimer) current(seq uint64) bool {
	return s.pending != nil && seq == s.seq
}

// consume marks the pending callback as delivered.
func (s *slotTimer) consume() {
	s.pending = nil
}

func (s *slotTimer) stop() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
