package zakat

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

// CheckOptions parameterizes an assessment run. Zero fields fall back to
// the customary defaults: 595 grams of silver for the Nisab, a 355 day
// lunar cycle for the Hawl, and a 2.5% cut.
type CheckOptions struct {
	// GramPrice is the valuation price of one gram of the reference
	// commodity, in the valuation currency. Required.
	GramPrice decimal.Decimal
	// GramQuantity is the number of grams that make up the Nisab.
	GramQuantity decimal.Decimal
	// Cycle is the Hawl: the holding duration a lot must mature past.
	Cycle time.Duration
	// Rate is the fraction levied per elapsed cycle.
	Rate decimal.Decimal
	// Now anchors the run; defaults to the current instant.
	Now daytime.Time
}

// DefaultGramQuantity is the customary Nisab weight in grams of silver.
var DefaultGramQuantity = decimal.NewFromInt(595)

// DefaultRate is the customary zakat cut per lunar year.
var DefaultRate = decimal.NewFromFloat(0.025)

func (o CheckOptions) withDefaults() CheckOptions {
	if o.GramQuantity.IsZero() {
		o.GramQuantity = DefaultGramQuantity
	}
	if o.Cycle == 0 {
		o.Cycle = daytime.Cycle(daytime.DefaultCycleDays)
	}
	if o.Rate.IsZero() {
		o.Rate = DefaultRate
	}
	if o.Now.IsZero() {
		o.Now = daytime.Now()
	}
	return o
}

// Nisab returns the wealth threshold in the valuation currency.
func (o CheckOptions) Nisab() decimal.Decimal { return o.GramPrice.Mul(o.GramQuantity) }

// PlanEntry is the assessment of one box: an immutable snapshot of the box
// and its context, plus the computed due.
type PlanEntry struct {
	// Box is the assessed box's age key.
	Box daytime.Time
	// Snapshot is the box state at assessment time; Apply refuses to run if
	// the live rest has drifted from it.
	Snapshot Box
	// Desc is the description of the box's originating credit log.
	Desc string
	// Rate is the exchange snapshot used for the valuation.
	Rate RateRecord
	// Due is the amount owed in the valuation currency.
	Due decimal.Decimal
	// Count is the number of whole cycles elapsed since the lot was funded
	// or last levied.
	Count int64
	// BelowNisab marks a box that qualified only through the collective
	// pool, not on its own value.
	BelowNisab bool
}

// Report is the immutable outcome of one assessment run. Valid reports are
// consumed exactly once by Apply.
type Report struct {
	Valid bool
	Time  daytime.Time

	// TotalWealth is every positive rest of the scanned accounts, in the
	// valuation currency, maturity notwithstanding.
	TotalWealth decimal.Decimal
	// ZakatableWealth is the portion of TotalWealth that matured past the
	// Hawl threshold.
	ZakatableWealth decimal.Decimal
	// EligibleBoxes is the number of boxes the plan covers.
	EligibleBoxes int
	// TotalDue is the overall levy in the valuation currency.
	TotalDue decimal.Decimal

	// Plan lists the per-box assessments per account id, newest box first.
	Plan map[int64][]PlanEntry

	applied bool
}

// Applied reports whether the report has been consumed by Apply.
func (r *Report) Applied() bool { return r.applied }

// SortedPlan iterates the plan grouped by account, ascending id order.
func (r *Report) SortedPlan() iter.Seq2[int64, []PlanEntry] {
	return func(yield func(int64, []PlanEntry) bool) {
		for _, id := range sortedPlanIDs(r.Plan) {
			if !yield(id, r.Plan[id]) {
				return
			}
		}
	}
}

// Check scans every visible zakatable account and assesses each mature,
// positive lot. A lot qualifies on its own when its converted rest reaches
// the Nisab. Lots below that threshold are pooled: when the pool as a whole
// reaches the Nisab they all qualify collectively (flagged BelowNisab),
// otherwise none of them is included this run. Check never mutates the
// ledger; an assessment with nothing due is a report with Valid false, not
// an error.
func (l *Ledger) Check(opts CheckOptions) (*Report, error) {
	opts = opts.withDefaults()
	if !opts.GramPrice.IsPositive() {
		return nil, fmt.Errorf("check: gram price %s: %w", opts.GramPrice, ErrInvalidRate)
	}
	nisab := opts.Nisab()
	cycle := decimal.NewFromInt(int64(opts.Cycle))

	report := &Report{
		Time: opts.Now,
		Plan: make(map[int64][]PlanEntry),
	}

	// Pool of candidates each below the individual Nisab.
	type pooled struct {
		account int64
		entry   PlanEntry
	}
	var pool []pooled
	poolValue := decimal.Zero

	for acct := range l.Accounts() {
		if acct.hidden || !acct.zakatable {
			continue
		}
		rate := l.rateAt(acct, opts.Now)
		keys := acct.boxKeys()
		for i := len(keys) - 1; i >= 0; i-- {
			key := keys[i]
			box := acct.boxes[key]
			if !box.Rest.IsPositive() {
				continue
			}
			value := exchangeCalc(box.Rest, rate.Rate, one)
			report.TotalWealth = report.TotalWealth.Add(value)

			since := key
			if box.Zakat.Last > since {
				since = box.Zakat.Last
			}
			elapsed := decimal.NewFromInt(int64(opts.Now.Sub(since)))
			count := elapsed.Div(cycle).Floor().IntPart()
			if count <= 0 {
				continue
			}
			report.ZakatableWealth = report.ZakatableWealth.Add(value)

			desc := ""
			if log := acct.logs[key]; log != nil {
				desc = log.Desc
			}
			entry := PlanEntry{
				Box:      key,
				Snapshot: *box,
				Desc:     desc,
				Rate:     rate,
				Count:    count,
			}
			if value.GreaterThanOrEqual(nisab) {
				// One cut per elapsed cycle, each on what the previous
				// cuts left over.
				due := decimal.Zero
				for c := int64(0); c < count; c++ {
					due = due.Add(opts.Rate.Mul(value.Sub(due)))
				}
				entry.Due = due
				report.Plan[acct.id] = append(report.Plan[acct.id], entry)
				report.EligibleBoxes++
				report.TotalDue = report.TotalDue.Add(due)
				continue
			}
			entry.Due = opts.Rate.Mul(value)
			entry.BelowNisab = true
			pool = append(pool, pooled{account: acct.id, entry: entry})
			poolValue = poolValue.Add(value)
		}
	}

	// The pool qualifies all-or-nothing.
	if poolValue.GreaterThanOrEqual(nisab) {
		for _, p := range pool {
			report.Plan[p.account] = append(report.Plan[p.account], p.entry)
			report.EligibleBoxes++
			report.TotalDue = report.TotalDue.Add(p.entry.Due)
		}
	}

	report.Valid = report.TotalDue.IsPositive()
	return report, nil
}

// Apply consumes a report. With parts nil, every planned box is depleted
// directly: its rest drops by the due (converted back to the account's
// unit), its zakat trace advances, and a levy log referencing the box is
// appended. With parts given, the planned boxes only advance their zakat
// traces while the due amount itself is withdrawn by ordinary LIFO
// subtraction from the accounts the parts name.
//
// A report that was already applied, or whose assessed boxes changed rest
// since the assessment, fails with ErrStaleReport. A parts breakdown that
// does not balance the report's due fails with ErrInvalidParts. The two
// conditions are never conflated. Every failure is detected before the
// first mutation, so a failed Apply leaves the ledger untouched.
func (l *Ledger) Apply(report *Report, parts *Parts, now daytime.Time) error {
	if report == nil || !report.Valid {
		return fmt.Errorf("apply: report is not valid")
	}
	release, err := l.acquire()
	if err != nil {
		return err
	}
	defer release()
	if now.IsZero() {
		now = daytime.Now()
	}

	// Stage every failure before the first mutation.
	if report.applied {
		return fmt.Errorf("apply: report of %v already applied: %w", report.Time, ErrStaleReport)
	}
	for _, aid := range sortedPlanIDs(report.Plan) {
		acct := l.accounts[aid]
		if acct == nil {
			return fmt.Errorf("apply: account #%d vanished: %w", aid, ErrStaleReport)
		}
		for _, entry := range report.Plan[aid] {
			box := acct.boxes[entry.Box]
			if box == nil {
				return fmt.Errorf("apply: box %v of #%d vanished: %w", entry.Box, aid, ErrStaleReport)
			}
			if !box.Rest.Equal(entry.Snapshot.Rest) {
				return fmt.Errorf("apply: box %v of #%d changed rest %s -> %s: %w",
					entry.Box, aid, entry.Snapshot.Rest, box.Rest, ErrStaleReport)
			}
		}
	}
	// The parts withdrawals are staged too: every payer must resolve and
	// every subtract must be known to succeed before the plan mutates, so a
	// failed Apply leaves no trace behind. Shares naming the same payer are
	// merged into one withdrawal.
	type withdrawal struct {
		acct  *Account
		local decimal.Decimal
	}
	var withdrawals []withdrawal
	if parts != nil {
		if err := l.CheckParts(parts); err != nil {
			return fmt.Errorf("apply: %w", err)
		}
		if !parts.Demand.Round(2).Equal(report.TotalDue.Round(2)) {
			return fmt.Errorf("apply: parts demand %s does not match due %s: %w",
				parts.Demand, report.TotalDue, ErrInvalidParts)
		}
		index := make(map[int64]int)
		for _, part := range parts.Parts {
			if !part.Amount.IsPositive() {
				continue
			}
			acct, ok := l.Account(part.Account)
			if !ok {
				return fmt.Errorf("apply: part account %v: %w", part.Account, ErrUnknownAccount)
			}
			rate := l.rateAt(acct, now)
			local := exchangeCalc(part.Amount, one, rate.Rate)
			if i, ok := index[acct.id]; ok {
				withdrawals[i].local = withdrawals[i].local.Add(local)
				continue
			}
			index[acct.id] = len(withdrawals)
			withdrawals = append(withdrawals, withdrawal{acct: acct, local: local})
		}
		for _, w := range withdrawals {
			available := decimal.Zero
			for _, b := range w.acct.boxes {
				if b.Rest.IsPositive() {
					available = available.Add(b.Rest)
				}
			}
			if w.local.GreaterThan(available) && w.acct.boxes[now] != nil {
				return fmt.Errorf("apply: payment from %v at %v: %w", w.acct.Ref(), now, ErrDuplicateTime)
			}
		}
	}

	done := l.beginStep(now)
	defer done()
	l.reports[now] = report
	l.record(Event{Action: ActionReport, Ref: now})

	for _, aid := range sortedPlanIDs(report.Plan) {
		acct := l.accounts[aid]
		rate := l.rateAt(acct, now)
		for _, entry := range report.Plan[aid] {
			box := acct.boxes[entry.Box]
			box.Zakat.Last = now
			l.record(Event{Action: ActionZakat, Account: aid, Ref: entry.Box, Key: "last"})
			// Due is in the valuation currency; the box holds account units.
			amount := exchangeCalc(entry.Due, one, rate.Rate)
			box.Zakat.Total = box.Zakat.Total.Add(amount)
			l.record(Event{Action: ActionZakat, Account: aid, Ref: entry.Box, Value: amount, Key: "total"})
			box.Zakat.Count += entry.Count
			l.record(Event{Action: ActionZakat, Account: aid, Ref: entry.Box, Value: decimal.NewFromInt(entry.Count), Key: "count"})
			if parts == nil {
				box.Rest = box.Rest.Sub(amount)
				l.appendLog(acct, amount.Neg(), "zakat", entry.Box, now)
			}
		}
	}

	for _, w := range withdrawals {
		if _, err := l.subtract(w.acct, w.local, "zakat payment", now); err != nil {
			return fmt.Errorf("apply: %w", err)
		}
	}

	report.applied = true
	return nil
}

func sortedPlanIDs(plan map[int64][]PlanEntry) []int64 {
	ids := slices.Collect(maps.Keys(plan))
	slices.Sort(ids)
	return ids
}
