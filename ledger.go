package zakat

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

// Ledger is the root aggregate of the vault. It owns every account, the
// exchange rate records, the audit history, the retained reports and the
// advisory lock. A Ledger is a single-writer, in-process structure: all
// mutating calls run to completion before returning and either fully apply
// or leave the vault untouched.
type Ledger struct {
	accounts map[int64]*Account
	names    map[string]int64
	lastID   int64
	rates    map[int64][]RateRecord
	reports  map[daytime.Time]*Report
	history  *History

	// advisory lock shared through the persisted vault.
	lock    uuid.UUID // uuid.Nil when free
	session uuid.UUID // this process's own token
	holds   int

	stepDepth int
	stepOpen  bool
}

// NewLedger creates an empty vault with history recording enabled.
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[int64]*Account),
		names:    make(map[string]int64),
		rates:    make(map[int64][]RateRecord),
		reports:  make(map[daytime.Time]*Report),
		history:  &History{enabled: true},
		session:  uuid.New(),
	}
}

// History returns the audit history side-channel.
func (l *Ledger) History() *History { return l.history }

// Lock acquires the advisory lock for this session and returns its token.
// It fails with ErrLocked when another holder owns the vault, typically a
// second process sharing the same persisted state. Acquiring is reentrant
// for the same session; every Lock must be paired with a Free.
func (l *Ledger) Lock() (uuid.UUID, error) {
	if l.lock != uuid.Nil && l.lock != l.session {
		return uuid.Nil, fmt.Errorf("cannot acquire: %w", ErrLocked)
	}
	l.lock = l.session
	l.holds++
	return l.session, nil
}

// Free releases one hold of the advisory lock. It reports whether the token
// matched the current holder.
func (l *Ledger) Free(token uuid.UUID) bool {
	if token == uuid.Nil || token != l.lock {
		return false
	}
	l.holds--
	if l.holds <= 0 {
		l.holds = 0
		l.lock = uuid.Nil
	}
	return true
}

// Locked reports whether the vault is currently held by a foreign session.
func (l *Ledger) Locked() bool { return l.lock != uuid.Nil && l.lock != l.session }

// acquire takes the lock for the duration of one mutating call and returns
// the paired release. Every mutating entry point goes through it.
func (l *Ledger) acquire() (func(), error) {
	token, err := l.Lock()
	if err != nil {
		return nil, err
	}
	return func() { l.Free(token) }, nil
}

// resolve finds the account a reference points at. With create set, a named
// reference registers a fresh account id and an id reference materializes
// the account; without it, unknown references fail with ErrUnknownAccount.
func (l *Ledger) resolve(ref Ref, create bool, at daytime.Time) (*Account, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("empty account reference: %w", ErrUnknownAccount)
	}
	if ref.name != "" {
		if id, ok := l.names[ref.name]; ok {
			return l.accounts[id], nil
		}
		if !create {
			return nil, fmt.Errorf("account %q: %w", ref.name, ErrUnknownAccount)
		}
		l.lastID++
		acct := l.createAccount(l.lastID, at)
		acct.name = ref.name
		l.names[ref.name] = acct.id
		l.record(Event{Action: ActionName, Account: acct.id, Key: ref.name})
		return acct, nil
	}
	if acct, ok := l.accounts[ref.id]; ok {
		return acct, nil
	}
	if !create {
		return nil, fmt.Errorf("account #%d: %w", ref.id, ErrUnknownAccount)
	}
	if ref.id > l.lastID {
		l.lastID = ref.id
	}
	return l.createAccount(ref.id, at), nil
}

func (l *Ledger) createAccount(id int64, at daytime.Time) *Account {
	acct := newAccount(id, at)
	l.accounts[id] = acct
	l.record(Event{Action: ActionCreate, Account: id, Ref: at})
	return acct
}

// Open creates the referenced account if it does not exist yet and returns
// it. It is the explicit counterpart of the implicit creation performed by
// Track and Transfer.
func (l *Ledger) Open(ref Ref, at daytime.Time) (*Account, error) {
	release, err := l.acquire()
	if err != nil {
		return nil, err
	}
	defer release()
	done := l.beginStep(at)
	defer done()
	return l.resolve(ref, true, at)
}

// Account returns the referenced account without creating it.
func (l *Ledger) Account(ref Ref) (*Account, bool) {
	acct, err := l.resolve(ref, false, 0)
	return acct, err == nil
}

// Exists reports whether the referenced account exists.
func (l *Ledger) Exists(ref Ref) bool {
	_, ok := l.Account(ref)
	return ok
}

// Balance returns the running balance of the referenced account.
func (l *Ledger) Balance(ref Ref) (decimal.Decimal, error) {
	acct, ok := l.Account(ref)
	if !ok {
		return decimal.Zero, fmt.Errorf("balance of %v: %w", ref, ErrUnknownAccount)
	}
	return acct.balance, nil
}

// Rename gives the account a new display name. The old name, if any, stops
// resolving. Renaming onto a name already taken by another account fails.
func (l *Ledger) Rename(ref Ref, name string, at daytime.Time) error {
	release, err := l.acquire()
	if err != nil {
		return err
	}
	defer release()
	if name == "" {
		return fmt.Errorf("rename %v: empty name: %w", ref, ErrUnknownAccount)
	}
	acct, ok := l.Account(ref)
	if !ok {
		return fmt.Errorf("rename %v: %w", ref, ErrUnknownAccount)
	}
	if id, taken := l.names[name]; taken && id != acct.id {
		return fmt.Errorf("rename %v: name %q already used by #%d", ref, name, id)
	}
	done := l.beginStep(at)
	defer done()
	if acct.name != "" {
		delete(l.names, acct.name)
	}
	acct.name = name
	l.names[name] = acct.id
	l.record(Event{Action: ActionName, Account: acct.id, Key: name})
	return nil
}

// SetHidden flips the hidden flag: hidden accounts are excluded from wealth
// reports but keep participating in internal accounting.
func (l *Ledger) SetHidden(ref Ref, hidden bool, at daytime.Time) error {
	return l.setFlag(ref, ActionHide, hidden, at, func(a *Account) { a.hidden = hidden })
}

// SetZakatable flips the zakatable flag: non-zakatable accounts are skipped
// by the assessment entirely.
func (l *Ledger) SetZakatable(ref Ref, zakatable bool, at daytime.Time) error {
	return l.setFlag(ref, ActionZakatable, zakatable, at, func(a *Account) { a.zakatable = zakatable })
}

func (l *Ledger) setFlag(ref Ref, action Action, on bool, at daytime.Time, apply func(*Account)) error {
	release, err := l.acquire()
	if err != nil {
		return err
	}
	defer release()
	acct, ok := l.Account(ref)
	if !ok {
		return fmt.Errorf("%s %v: %w", action, ref, ErrUnknownAccount)
	}
	done := l.beginStep(at)
	defer done()
	apply(acct)
	value := decimal.Zero
	if on {
		value = decimal.NewFromInt(1)
	}
	l.record(Event{Action: action, Account: acct.id, Value: value})
	return nil
}

// accountIDs returns every account id in ascending order.
func (l *Ledger) accountIDs() []int64 {
	ids := slices.Collect(maps.Keys(l.accounts))
	slices.Sort(ids)
	return ids
}

// Accounts iterates over all accounts in ascending id order.
func (l *Ledger) Accounts() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		for _, id := range l.accountIDs() {
			if !yield(l.accounts[id]) {
				return
			}
		}
	}
}

// Reports returns the retained reports keyed by their application instant.
func (l *Ledger) Reports() map[daytime.Time]*Report { return maps.Clone(l.reports) }

// Stats is a census of the vault.
type Stats struct {
	Accounts int
	Boxes    int
	Logs     int
	Rates    int
	Steps    int
	Reports  int
}

// Stats counts the vault's content.
func (l *Ledger) Stats() Stats {
	s := Stats{
		Accounts: len(l.accounts),
		Reports:  len(l.reports),
		Steps:    l.history.Len(),
	}
	for _, acct := range l.accounts {
		s.Boxes += len(acct.boxes)
		s.Logs += len(acct.logs)
	}
	for _, rr := range l.rates {
		s.Rates += len(rr)
	}
	return s
}

// LogView is one log entry together with its owning account, used by the
// daily summaries.
type LogView struct {
	Time    daytime.Time
	Account *Account
	Log     *Log
}

// DailySummary aggregates all log activity of one calendar day.
type DailySummary struct {
	Day     daytime.Time
	Credits decimal.Decimal
	Debits  decimal.Decimal
	Entries []LogView
}

// DailyLogs groups every account's log entries by calendar day, most recent
// day first. Entries within a day keep their chronological order.
func (l *Ledger) DailyLogs() []DailySummary {
	byDay := make(map[daytime.Time]*DailySummary)
	for acct := range l.Accounts() {
		for t, entry := range acct.Logs() {
			day := t.Day()
			s, ok := byDay[day]
			if !ok {
				s = &DailySummary{Day: day, Credits: decimal.Zero, Debits: decimal.Zero}
				byDay[day] = s
			}
			if entry.Value.IsNegative() {
				s.Debits = s.Debits.Add(entry.Value)
			} else {
				s.Credits = s.Credits.Add(entry.Value)
			}
			s.Entries = append(s.Entries, LogView{Time: t, Account: acct, Log: entry})
		}
	}
	days := slices.Collect(maps.Keys(byDay))
	slices.Sort(days)
	slices.Reverse(days)
	out := make([]DailySummary, 0, len(days))
	for _, day := range days {
		s := byDay[day]
		slices.SortFunc(s.Entries, func(a, b LogView) int {
			return cmp.Compare(a.Time, b.Time)
		})
		out = append(out, *s)
	}
	return out
}
