package zakat

import (
	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

// Action tags one semantic sub-event in the audit history.
type Action string

const (
	ActionCreate     Action = "create"
	ActionName       Action = "name"
	ActionLog        Action = "log"
	ActionTrack      Action = "track"
	ActionSub        Action = "sub"
	ActionTransfer   Action = "transfer"
	ActionExchange   Action = "exchange"
	ActionHide       Action = "hide"
	ActionZakatable  Action = "zakatable"
	ActionZakat      Action = "zakat"
	ActionReport     Action = "report"
	ActionAddFile    Action = "add-file"
	ActionRemoveFile Action = "remove-file"
)

// Event is one semantic sub-event inside a step. Account is the numeric id
// of the affected account (0 for ledger-wide events such as report
// retention), Ref the box or log key involved, Value the signed amount or
// flag value, and Key names the mutated field where the action alone is
// ambiguous (e.g. "last" vs "total" on a zakat levy).
type Event struct {
	Action  Action
	Account int64
	Ref     daytime.Time
	Value   decimal.Decimal
	Key     string
}

// Step groups the events recorded during one logical API call. Steps are
// appended atomically and never mutated after the call returns.
type Step struct {
	Time   daytime.Time
	Events []Event
}

// History is the append-only audit record of the ledger. It is a pure
// side-channel: disabling it changes nothing in the box model.
type History struct {
	enabled bool
	steps   []Step
}

// Enabled reports whether new steps are being recorded.
func (h *History) Enabled() bool { return h != nil && h.enabled }

// SetEnabled switches recording on or off. Existing steps are kept.
func (h *History) SetEnabled(on bool) { h.enabled = on }

// Steps returns the recorded steps, oldest first.
func (h *History) Steps() []Step { return h.steps }

// Len returns the number of recorded steps.
func (h *History) Len() int { return len(h.steps) }

// beginStep opens a step for one logical call and returns a closer. Nested
// calls within the same operation share the outermost step. When history is
// disabled both the step and its events are dropped.
func (l *Ledger) beginStep(at daytime.Time) func() {
	l.stepDepth++
	if l.stepDepth == 1 && l.history.Enabled() {
		l.history.steps = append(l.history.steps, Step{Time: at})
		l.stepOpen = true
	}
	return func() {
		l.stepDepth--
		if l.stepDepth == 0 {
			l.stepOpen = false
		}
	}
}

// record appends an event to the step currently open.
func (l *Ledger) record(e Event) {
	if !l.stepOpen || !l.history.Enabled() {
		return
	}
	last := len(l.history.steps) - 1
	l.history.steps[last].Events = append(l.history.steps[last].Events, e)
}
