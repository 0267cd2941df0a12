package zakat

import (
	"testing"

	"github.com/vzool/zakat/daytime"
)

func TestHistoryGroupsEventsPerCall(t *testing.T) {
	l := NewLedger()
	mustTrack(t, l, "100", "pocket", "2024-01-01")
	mustTrack(t, l, "100", "pocket", "2024-02-01")
	if _, _, err := l.Subtract(dec(t, "150"), "", ByName("pocket"), daytime.MustParse("2024-03-01")); err != nil {
		t.Fatal(err)
	}

	steps := l.History().Steps()
	if len(steps) != 3 {
		t.Fatalf("steps = %d, want one per call", len(steps))
	}

	// the first track carries creation, naming, log and box events together
	actions := map[Action]bool{}
	for _, e := range steps[0].Events {
		actions[e.Action] = true
	}
	for _, want := range []Action{ActionCreate, ActionName, ActionLog, ActionTrack} {
		if !actions[want] {
			t.Errorf("first step missing %s event: %+v", want, steps[0].Events)
		}
	}

	// the subtract touched two boxes and logged once per box
	var subs int
	for _, e := range steps[2].Events {
		if e.Action == ActionSub {
			subs++
		}
	}
	if subs != 2 {
		t.Errorf("subtract step has %d sub events, want 2", subs)
	}
}

func TestTransferIsOneStep(t *testing.T) {
	l := NewLedger()
	mustTrack(t, l, "100", "a", "2024-01-01")

	before := l.History().Len()
	if _, err := l.Transfer(dec(t, "50"), ByName("a"), ByName("b"), "", daytime.MustParse("2024-02-01")); err != nil {
		t.Fatal(err)
	}
	if got := l.History().Len() - before; got != 1 {
		t.Errorf("transfer recorded %d steps, want 1", got)
	}
}

func TestHistoryDisabled(t *testing.T) {
	l := NewLedger()
	l.History().SetEnabled(false)
	mustTrack(t, l, "100", "pocket", "2024-01-01")

	if l.History().Len() != 0 {
		t.Errorf("disabled history recorded %d steps", l.History().Len())
	}
	// the box model is unaffected
	assertDecimal(t, mustBalance(t, l, "pocket"), "100", "balance")

	l.History().SetEnabled(true)
	mustTrack(t, l, "50", "pocket", "2024-02-01")
	if l.History().Len() != 1 {
		t.Errorf("re-enabled history recorded %d steps, want 1", l.History().Len())
	}
}
