package pacing

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/tracetide/tracetide/internal/packet"
	"github.com/tracetide/tracetide/internal/timeline"
)

const testInterval = 30 * time.Millisecond

// snapshotWithTurns builds an engine snapshot whose stream has one
// completed web-search step per turn index up to and including maxTurn.
func snapshotWithTurns(t *testing.T, maxTurn int, stopped bool) timeline.Snapshot {
	t.Helper()

	var packets []packet.Packet
	for turn := 0; turn <= maxTurn; turn++ {
		placement := packet.Placement{TurnIndex: turn}
		packets = append(packets,
			packet.Packet{Placement: placement, Payload: packet.ToolStart{Tool: packet.ToolWebSearch}},
			packet.Packet{Placement: placement, Payload: packet.SectionEnd{}},
		)
	}
	if stopped {
		packets = append(packets, packet.Packet{Payload: packet.Stop{Reason: packet.StopReasonEndTurn}})
	}
	return timeline.NewEngine(nil).Process(packets, "s1")
}

func TestScheduler_FirstContentShowsImmediately(t *testing.T) {
	s := NewScheduler(testInterval, nil)
	defer s.Close()

	s.Observe(snapshotWithTurns(t, 0, false), "s1")

	if got := s.Paced().activeTurn(); got != 0 {
		t.Errorf("First turn group must show without delay, got active turn %d", got)
	}
}

func TestScheduler_SameTurnGrowthShowsImmediately(t *testing.T) {
	s := NewScheduler(testInterval, nil)
	defer s.Close()

	s.Observe(snapshotWithTurns(t, 0, false), "s1")

	snap := snapshotWithTurns(t, 0, false)
	s.Observe(snap, "s1")

	if len(s.Paced().TurnGroups) != 1 {
		t.Errorf("Growth within the visible turn must not be held, got %d groups", len(s.Paced().TurnGroups))
	}
}

func TestScheduler_TransitionHeldThenAdvances(t *testing.T) {
	advanced := make(chan struct{}, 1)
	s := NewScheduler(testInterval, func() { advanced <- struct{}{} })
	defer s.Close()

	s.Observe(snapshotWithTurns(t, 0, false), "s1")
	s.Observe(snapshotWithTurns(t, 1, false), "s1")

	if got := s.Paced().activeTurn(); got != 0 {
		t.Fatalf("Transition must be held for the settle interval, but active turn is %d", got)
	}

	select {
	case <-advanced:
	case <-time.After(10 * testInterval):
		t.Fatal("Held transition never advanced")
	}

	if got := s.Paced().activeTurn(); got != 1 {
		t.Errorf("Expected active turn 1 after settle, got %d", got)
	}
}

func TestScheduler_SupersedingTargetReplacesPending(t *testing.T) {
	advances := atomic.Int32{}
	advanced := make(chan struct{}, 4)
	s := NewScheduler(testInterval, func() {
		advances.Add(1)
		advanced <- struct{}{}
	})
	defer s.Close()

	s.Observe(snapshotWithTurns(t, 0, false), "s1")
	s.Observe(snapshotWithTurns(t, 1, false), "s1")
	s.Observe(snapshotWithTurns(t, 3, false), "s1")

	select {
	case <-advanced:
	case <-time.After(10 * testInterval):
		t.Fatal("Held transition never advanced")
	}

	if got := s.Paced().activeTurn(); got != 3 {
		t.Errorf("Superseding snapshot must replace the pending target, got active turn %d", got)
	}
	if n := advances.Load(); n != 1 {
		t.Errorf("Replaced targets must not queue extra delays, got %d advances", n)
	}
}

func TestScheduler_NegativeIntervalDisablesHolding(t *testing.T) {
	s := NewScheduler(-1, nil)
	defer s.Close()

	s.Observe(snapshotWithTurns(t, 0, false), "s1")
	s.Observe(snapshotWithTurns(t, 1, false), "s1")

	if got := s.Paced().activeTurn(); got != 1 {
		t.Errorf("Disabled pacing must show every transition immediately, got active turn %d", got)
	}
}

func TestScheduler_StopFlushesImmediately(t *testing.T) {
	s := NewScheduler(time.Hour, nil) // would never elapse on its own
	defer s.Close()

	s.Observe(snapshotWithTurns(t, 0, false), "s1")
	s.Observe(snapshotWithTurns(t, 1, false), "s1")
	s.Observe(snapshotWithTurns(t, 2, true), "s1")

	if got := s.Paced().activeTurn(); got != 2 {
		t.Errorf("Stop must flush all pending delays, got active turn %d", got)
	}
}

func TestScheduler_RewoundStreamShowsImmediately(t *testing.T) {
	s := NewScheduler(time.Hour, nil)
	defer s.Close()

	s.Observe(snapshotWithTurns(t, 2, false), "s1")
	s.Observe(snapshotWithTurns(t, 0, false), "s1")

	if got := s.Paced().activeTurn(); got != 0 {
		t.Errorf("A rewound stream must replace the view without delay, got active turn %d", got)
	}
}

func TestScheduler_SessionChangeDiscardsPending(t *testing.T) {
	s := NewScheduler(testInterval, nil)
	defer s.Close()

	s.Observe(snapshotWithTurns(t, 0, false), "s1")
	s.Observe(snapshotWithTurns(t, 1, false), "s1")

	s.Observe(snapshotWithTurns(t, 0, false), "s2")

	time.Sleep(3 * testInterval)

	// The held s1 transition must not fire into s2's view.
	if got := s.Paced().activeTurn(); got != 0 {
		t.Errorf("Expected fresh session view at turn 0, got %d", got)
	}
}

func TestScheduler_CloseCancelsTimer(t *testing.T) {
	s := NewScheduler(testInterval, func() {
		t.Error("Advance callback fired after Close")
	})

	s.Observe(snapshotWithTurns(t, 0, false), "s1")
	s.Observe(snapshotWithTurns(t, 1, false), "s1")
	s.Close()

	time.Sleep(3 * testInterval)

	if got := s.Paced().activeTurn(); got != -1 {
		t.Errorf("Closed scheduler must hold no view, got active turn %d", got)
	}
}

func TestScheduler_ObserveAfterCloseIgnored(t *testing.T) {
	s := NewScheduler(testInterval, nil)
	s.Close()
	s.Observe(snapshotWithTurns(t, 0, false), "s1")

	if got := s.Paced().activeTurn(); got != -1 {
		t.Errorf("Observe after Close must be ignored, got active turn %d", got)
	}
}
