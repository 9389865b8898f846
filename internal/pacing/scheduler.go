// Package pacing inserts a bounded, cancelable settle delay between
// visible turn-group transitions so tool-result UI can finish its
// animation before the next group appears. Pacing only delays when a
// transition becomes visible, never whether it does.
package pacing

import (
	"sync"
	"time"

	"github.com/tracetide/tracetide/internal/timeline"
)

// DefaultSettleInterval is the hold applied between turn-group
// transitions when no interval is configured.
const DefaultSettleInterval = 900 * time.Millisecond

// View is the paced projection of an engine snapshot: the turn groups,
// display groups, and answer flag the consumer should currently render.
// It lags the raw snapshot by at most one settle interval per
// transition.
type View struct {
	TurnGroups        []*timeline.TurnGroup
	DisplayGroups     []*timeline.Step
	FinalAnswerComing bool
}

// activeTurn returns the turn index of the view's newest turn group, or
// -1 when it has none.
func (v View) activeTurn() int {
	if len(v.TurnGroups) == 0 {
		return -1
	}
	return v.TurnGroups[len(v.TurnGroups)-1].TurnIndex
}

// Scheduler holds snapshot transitions for a settle interval before
// making them visible. It owns at most one single-shot timer, keyed by
// the pending target turn group; superseding snapshots replace the
// pending target without extending the delay, so lag never compounds.
// Safe for concurrent use.
type Scheduler struct {
	mu        sync.Mutex
	interval  time.Duration
	onAdvance func()

	sessionKey string
	visible    View
	pending    *View
	timer      *time.Timer
	closed     bool
}

// NewScheduler creates a Scheduler. An interval of zero selects
// DefaultSettleInterval; a negative interval disables holding entirely,
// so every observed snapshot becomes visible immediately. onAdvance, if
// non-nil, is invoked (without the scheduler lock held) each time a
// held transition becomes visible, so a consumer can trigger a repaint.
func NewScheduler(interval time.Duration, onAdvance func()) *Scheduler {
	if interval == 0 {
		interval = DefaultSettleInterval
	}
	return &Scheduler{
		interval:  interval,
		onAdvance: onAdvance,
	}
}

// Observe feeds the scheduler the latest engine snapshot. The
// sessionKey must match the one passed to Engine.Process; a change
// synchronously discards any held transition along with the visible
// view, so no timer from a previous session can fire into the new one.
func (s *Scheduler) Observe(snap timeline.Snapshot, sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if sessionKey != s.sessionKey {
		s.resetLocked()
		s.sessionKey = sessionKey
	}

	target := View{
		TurnGroups:        snap.ToolTurnGroups,
		DisplayGroups:     snap.DisplayGroups,
		FinalAnswerComing: snap.FinalAnswerComing,
	}
	targetTurn := target.activeTurn()
	visibleTurn := s.visible.activeTurn()

	// Holds apply only between one visible turn group and the next,
	// and only while streaming. First content, growth within the
	// current group, a rewound stream, and anything after stop all
	// show immediately.
	if s.interval < 0 || snap.StopPacketSeen || visibleTurn == -1 || targetTurn <= visibleTurn {
		s.cancelTimerLocked()
		s.pending = nil
		s.visible = target
		return
	}

	s.pending = &target
	if s.timer == nil {
		s.timer = time.AfterFunc(s.interval, s.advance)
	}
}

// Paced returns the currently visible view.
func (s *Scheduler) Paced() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Close cancels any held transition and stops the scheduler. Further
// Observe calls are ignored. Safe to call more than once.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.closed = true
}

// advance promotes the pending view once the settle interval elapses.
func (s *Scheduler) advance() {
	s.mu.Lock()
	s.timer = nil
	if s.closed || s.pending == nil {
		s.mu.Unlock()
		return
	}
	s.visible = *s.pending
	s.pending = nil
	cb := s.onAdvance
	s.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// resetLocked clears all transition state. Caller holds the lock.
func (s *Scheduler) resetLocked() {
	s.cancelTimerLocked()
	s.pending = nil
	s.visible = View{}
}

// cancelTimerLocked stops the settle timer if one is armed. Caller
// holds the lock.
func (s *Scheduler) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
