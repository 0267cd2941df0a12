package zakat

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

// Deduction reports one box the allocator took funds from: the box's age
// key and the amount deducted from its rest.
type Deduction struct {
	Box    daytime.Time
	Amount decimal.Decimal
}

// appendLog appends one mutation record to the account and maintains the
// running balance. Log keys must be unique; when the requested instant is
// already taken the key is bumped by single nanoseconds.
func (l *Ledger) appendLog(acct *Account, value decimal.Decimal, desc string, ref, at daytime.Time) daytime.Time {
	key := at
	for acct.logs[key] != nil {
		key++
	}
	acct.balance = acct.balance.Add(value)
	acct.logs[key] = &Log{Value: value, Desc: desc, Ref: ref}
	l.record(Event{Action: ActionLog, Account: acct.id, Ref: key, Value: value})
	return key
}

// Track credits the account with a new funding lot keyed by at. The account
// is created on first reference. It returns the new box's key, which is the
// lot's age anchor for the rest of its life.
func (l *Ledger) Track(amount decimal.Decimal, desc string, ref Ref, at daytime.Time) (daytime.Time, error) {
	if !amount.IsPositive() {
		return 0, fmt.Errorf("track %s on %v: %w", amount, ref, ErrInvalidAmount)
	}
	release, err := l.acquire()
	if err != nil {
		return 0, err
	}
	defer release()
	done := l.beginStep(at)
	defer done()
	acct, err := l.resolve(ref, true, at)
	if err != nil {
		return 0, err
	}
	return l.track(acct, amount, desc, at)
}

// track creates the box and its credit log. The caller validated amount.
func (l *Ledger) track(acct *Account, amount decimal.Decimal, desc string, at daytime.Time) (daytime.Time, error) {
	if acct.boxes[at] != nil {
		return 0, fmt.Errorf("track on %v at %v: %w", acct.Ref(), at, ErrDuplicateTime)
	}
	l.appendLog(acct, amount, desc, 0, at)
	acct.boxes[at] = &Box{Capital: amount, Rest: amount}
	l.record(Event{Action: ActionTrack, Account: acct.id, Ref: at, Value: amount})
	return at, nil
}

// Subtract debits the account, depleting boxes newest first. The LIFO order
// is deliberate: it leaves the oldest lots intact so they can mature past
// the Hawl threshold. When the positive rests cannot cover the amount, one
// debt box with a negative rest is created, keyed by at; that box stays
// exempt from zakat until its balance recovers. It returns at and the list
// of deductions, one per box touched.
func (l *Ledger) Subtract(amount decimal.Decimal, desc string, ref Ref, at daytime.Time) (daytime.Time, []Deduction, error) {
	if !amount.IsPositive() {
		return 0, nil, fmt.Errorf("subtract %s on %v: %w", amount, ref, ErrInvalidAmount)
	}
	release, err := l.acquire()
	if err != nil {
		return 0, nil, err
	}
	defer release()
	done := l.beginStep(at)
	defer done()
	acct, err := l.resolve(ref, true, at)
	if err != nil {
		return 0, nil, err
	}
	deds, err := l.subtract(acct, amount, desc, at)
	if err != nil {
		return 0, nil, err
	}
	return at, deds, nil
}

func (l *Ledger) subtract(acct *Account, amount decimal.Decimal, desc string, at daytime.Time) ([]Deduction, error) {
	// Stage the only failure mode before touching anything, so the call is
	// all-or-nothing.
	available := decimal.Zero
	for _, b := range acct.boxes {
		if b.Rest.IsPositive() {
			available = available.Add(b.Rest)
		}
	}
	if amount.GreaterThan(available) && acct.boxes[at] != nil {
		return nil, fmt.Errorf("subtract on %v at %v: %w", acct.Ref(), at, ErrDuplicateTime)
	}

	target := amount
	var deds []Deduction
	keys := acct.boxKeys()
	for i := len(keys) - 1; i >= 0 && target.IsPositive(); i-- {
		box := acct.boxes[keys[i]]
		if !box.Rest.IsPositive() {
			continue
		}
		chunk := decimal.Min(box.Rest, target)
		box.Rest = box.Rest.Sub(chunk)
		l.appendLog(acct, chunk.Neg(), desc, keys[i], at)
		l.record(Event{Action: ActionSub, Account: acct.id, Ref: keys[i], Value: chunk})
		deds = append(deds, Deduction{Box: keys[i], Amount: chunk})
		target = target.Sub(chunk)
	}
	if target.IsPositive() {
		// Shortfall: one debt lot carries the negative remainder.
		debt := target.Neg()
		acct.boxes[at] = &Box{Capital: debt, Rest: debt}
		l.appendLog(acct, debt, desc, at, at)
		l.record(Event{Action: ActionTrack, Account: acct.id, Ref: at, Value: debt})
		deds = append(deds, Deduction{Box: at, Amount: target})
	}
	return deds, nil
}

// Transfer moves funds between two distinct accounts. The debit side is an
// ordinary LIFO subtract; the credit side is split per source box consumed
// and lands in boxes of the destination keyed by each source box's original
// age, merging capital and rest additively when such a box already exists.
// Ages therefore survive arbitrarily many hops. Amounts are converted
// through both accounts' exchange rates at the transfer instant. It returns
// the destination box keys credited.
func (l *Ledger) Transfer(amount decimal.Decimal, from, to Ref, desc string, at daytime.Time) ([]daytime.Time, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("transfer %s: %w", amount, ErrInvalidAmount)
	}
	release, err := l.acquire()
	if err != nil {
		return nil, err
	}
	defer release()
	done := l.beginStep(at)
	defer done()
	src, err := l.resolve(from, true, at)
	if err != nil {
		return nil, err
	}
	dst, err := l.resolve(to, true, at)
	if err != nil {
		return nil, err
	}
	if src.id == dst.id {
		return nil, fmt.Errorf("transfer from %v to %v: %w", from, to, ErrSameAccount)
	}

	srcRate := l.rateAt(src, at)
	dstRate := l.rateAt(dst, at)
	deds, err := l.subtract(src, amount, desc, at)
	if err != nil {
		return nil, err
	}

	credited := make([]daytime.Time, 0, len(deds))
	for _, d := range deds {
		value := exchangeCalc(d.Amount, srcRate.Rate, dstRate.Rate)
		if box := dst.boxes[d.Box]; box != nil {
			box.Capital = box.Capital.Add(value)
			box.Rest = box.Rest.Add(value)
		} else {
			dst.boxes[d.Box] = &Box{Capital: value, Rest: value}
		}
		// The credit log shares the box's age key, so the box keeps an
		// originating log on the destination too.
		l.appendLog(dst, value, fmt.Sprintf("transfer from %v", src.Ref()), 0, d.Box)
		l.record(Event{Action: ActionTransfer, Account: dst.id, Ref: d.Box, Value: value})
		credited = append(credited, d.Box)
	}
	return credited, nil
}
