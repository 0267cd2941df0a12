package zakat

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

// Ref identifies an account either by its caller-supplied name or by its
// numeric id. The zero Ref is invalid.
type Ref struct {
	name string
	id   int64
}

// ByName references an account by its display name. The account is created
// on first use by tracking operations.
func ByName(name string) Ref { return Ref{name: name} }

// ByID references an account by its numeric id.
func ByID(id int64) Ref { return Ref{id: id} }

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool { return r.name == "" && r.id == 0 }

func (r Ref) String() string {
	if r.name != "" {
		return r.name
	}
	return fmt.Sprintf("#%d", r.id)
}

// ZakatTrace records how zakat has been taken from a single box: how many
// cycles were levied, when the last levy happened, and the cumulative
// amount deducted over the box's lifetime.
type ZakatTrace struct {
	Count int64
	Last  daytime.Time
	Total decimal.Decimal
}

// Box is one funding lot. Its key (held by the owning account) is the
// instant the funds were first tracked and never changes, even when the
// funds move to another account. Capital is the amount originally credited;
// Rest is what remains. Rest goes negative when a subtraction exceeded all
// positive lots, which marks a debt lot exempt from zakat.
type Box struct {
	Capital decimal.Decimal
	Rest    decimal.Decimal
	Zakat   ZakatTrace
}

// Log is the immutable record of one box-affecting mutation. Ref points at
// the box the mutation depleted; it is zero for pure credits. Files holds
// attachment metadata keyed by the attachment instant.
type Log struct {
	Value decimal.Decimal
	Desc  string
	Ref   daytime.Time
	Files map[daytime.Time]string
}

// Account is a named container of boxes. Balance is maintained as logs are
// appended and always equals the sum of the boxes' rests.
type Account struct {
	id        int64
	name      string
	created   daytime.Time
	hidden    bool
	zakatable bool
	balance   decimal.Decimal
	boxes     map[daytime.Time]*Box
	logs      map[daytime.Time]*Log
}

func newAccount(id int64, at daytime.Time) *Account {
	return &Account{
		id:        id,
		created:   at,
		zakatable: true,
		boxes:     make(map[daytime.Time]*Box),
		logs:      make(map[daytime.Time]*Log),
	}
}

// ID returns the account's numeric id.
func (a *Account) ID() int64 { return a.id }

// Name returns the display name, empty for unnamed accounts.
func (a *Account) Name() string { return a.name }

// Created returns the instant the account was first referenced.
func (a *Account) Created() daytime.Time { return a.created }

// Hidden reports whether the account is excluded from assessments and listings.
func (a *Account) Hidden() bool { return a.hidden }

// Zakatable reports whether the account's funds are subject to zakat.
func (a *Account) Zakatable() bool { return a.zakatable }

// Balance returns the running balance maintained by the log appends.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// BoxCount returns the number of boxes, debt boxes included.
func (a *Account) BoxCount() int { return len(a.boxes) }

// LogCount returns the number of log entries.
func (a *Account) LogCount() int { return len(a.logs) }

// Ref returns the most precise reference to this account.
func (a *Account) Ref() Ref {
	if a.name != "" {
		return ByName(a.name)
	}
	return ByID(a.id)
}

// Box returns the box keyed at t, or nil if there is none.
func (a *Account) Box(t daytime.Time) *Box { return a.boxes[t] }

// Log returns the log entry keyed at t, or nil if there is none.
func (a *Account) Log(t daytime.Time) *Log { return a.logs[t] }

// boxKeys returns all box keys in ascending order.
func (a *Account) boxKeys() []daytime.Time {
	keys := slices.Collect(maps.Keys(a.boxes))
	slices.Sort(keys)
	return keys
}

// logKeys returns all log keys in ascending order.
func (a *Account) logKeys() []daytime.Time {
	keys := slices.Collect(maps.Keys(a.logs))
	slices.Sort(keys)
	return keys
}

// Boxes iterates over the account's boxes in ascending key order.
func (a *Account) Boxes() iter.Seq2[daytime.Time, *Box] {
	return func(yield func(daytime.Time, *Box) bool) {
		for _, k := range a.boxKeys() {
			if !yield(k, a.boxes[k]) {
				return
			}
		}
	}
}

// Logs iterates over the account's log entries in ascending key order.
func (a *Account) Logs() iter.Seq2[daytime.Time, *Log] {
	return func(yield func(daytime.Time, *Log) bool) {
		for _, k := range a.logKeys() {
			if !yield(k, a.logs[k]) {
				return
			}
		}
	}
}

// RecomputedBalance sums the rests of every box. It always equals Balance;
// the conservation tests rely on it.
func (a *Account) RecomputedBalance() decimal.Decimal {
	sum := decimal.Zero
	for _, b := range a.boxes {
		sum = sum.Add(b.Rest)
	}
	return sum
}
