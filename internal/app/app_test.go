package app

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestSchedulerPostsRedrawEvent(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)

	sched := &screenScheduler{screen: s}
	sched.Schedule(time.Millisecond, 7)

	ev := s.PollEvent()
	iev, ok := ev.(*tcell.EventInterrupt)
	if !ok {
		t.Fatalf("event = %T, want *tcell.EventInterrupt", ev)
	}
	gen, ok := iev.Data().(redrawGen)
	if !ok {
		t.Fatalf("event data = %T, want redrawGen", iev.Data())
	}
	if gen != 7 {
		t.Fatalf("gen = %d, want 7", gen)
	}
}
