package zakat

import (
	"fmt"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

// RateRecord is one point-in-time exchange rate for an account: one unit of
// the account's currency is worth Rate units of the valuation currency.
type RateRecord struct {
	Time daytime.Time
	Rate decimal.Decimal
	Desc string
}

var one = decimal.NewFromInt(1)

// identityRate is what RateAt falls back to before any rate was ever
// recorded: funds are assumed already expressed in the valuation unit.
func identityRate(at daytime.Time) RateRecord {
	return RateRecord{Time: at, Rate: one}
}

// Exchange records an exchange rate for the account at the given instant.
// The account is created on first reference. It fails with ErrInvalidRate
// when the rate is not positive. Recording a rate has no ledger-value side
// effect: existing boxes keep their face values.
func (l *Ledger) Exchange(ref Ref, rate decimal.Decimal, at daytime.Time, desc string) (RateRecord, error) {
	if !rate.IsPositive() {
		return RateRecord{}, fmt.Errorf("exchange for %v: rate %s: %w", ref, rate, ErrInvalidRate)
	}
	release, err := l.acquire()
	if err != nil {
		return RateRecord{}, err
	}
	defer release()
	done := l.beginStep(at)
	defer done()
	acct, err := l.resolve(ref, true, at)
	if err != nil {
		return RateRecord{}, err
	}
	rec := RateRecord{Time: at, Rate: rate, Desc: desc}
	records := l.rates[acct.id]
	// keep records sorted by time so resolution is a predecessor search.
	i := sort.Search(len(records), func(i int) bool { return records[i].Time > at })
	records = slices.Insert(records, i, rec)
	l.rates[acct.id] = records
	l.record(Event{Action: ActionExchange, Account: acct.id, Ref: at, Value: rate})
	return rec, nil
}

// RateAt resolves the exchange rate of the account at the given instant:
// the record with the greatest timestamp not after at. Before any record,
// the identity rate 1 applies.
func (l *Ledger) RateAt(ref Ref, at daytime.Time) RateRecord {
	acct, ok := l.Account(ref)
	if !ok {
		return identityRate(at)
	}
	return l.rateAt(acct, at)
}

func (l *Ledger) rateAt(acct *Account, at daytime.Time) RateRecord {
	records := l.rates[acct.id]
	// first index with Time > at; the predecessor is right before it.
	i := sort.Search(len(records), func(i int) bool { return records[i].Time > at })
	if i == 0 {
		return identityRate(at)
	}
	return records[i-1]
}

// Rates returns all rate records of the account in chronological order.
func (l *Ledger) Rates(ref Ref) []RateRecord {
	acct, ok := l.Account(ref)
	if !ok {
		return nil
	}
	return slices.Clone(l.rates[acct.id])
}

// exchangeCalc converts an amount valued at xRate into the unit valued at
// yRate: (x * xRate) / yRate.
func exchangeCalc(x, xRate, yRate decimal.Decimal) decimal.Decimal {
	return x.Mul(xRate).Div(yRate)
}
