package zakat

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

// Part is one account's share of a payment. Balance and Amount are both
// expressed in the valuation currency; Rate is the exchange snapshot that
// converted the account's balance.
type Part struct {
	Account Ref
	Balance decimal.Decimal
	Rate    decimal.Decimal
	Amount  decimal.Decimal
}

// Parts is a payment breakdown: how a demanded amount is split across
// accounts. Built by BuildParts and consumed by Apply.
type Parts struct {
	// Demand is the total amount to withdraw, in the valuation currency.
	Demand decimal.Decimal
	// Total is the sum of the candidates' converted balances.
	Total decimal.Decimal
	// Exceed allows parts larger than their account's balance.
	Exceed bool
	// Parts lists the shares in candidate order.
	Parts []Part
}

// BuildParts splits a demanded amount across candidate accounts in
// proportion to their available balances, each share capped at its
// account's balance. Balances are valued with the exchange rates in effect
// at the given instant (zero means now). With no candidates given, every
// zakatable account with a positive balance is considered, in ascending id
// order. The rounding remainder of the proportional split lands on the
// last candidate so the shares sum exactly to the demand. When the
// candidates cannot cover the demand it fails with ErrInsufficientFunds.
func (l *Ledger) BuildParts(demand decimal.Decimal, at daytime.Time, candidates ...Ref) (*Parts, error) {
	if !demand.IsPositive() {
		return nil, fmt.Errorf("build parts for %s: %w", demand, ErrInvalidAmount)
	}
	if at.IsZero() {
		at = daytime.Now()
	}

	var accounts []*Account
	if len(candidates) == 0 {
		for acct := range l.Accounts() {
			if acct.zakatable {
				accounts = append(accounts, acct)
			}
		}
	} else {
		for _, ref := range candidates {
			acct, ok := l.Account(ref)
			if !ok {
				return nil, fmt.Errorf("build parts: %v: %w", ref, ErrUnknownAccount)
			}
			accounts = append(accounts, acct)
		}
	}

	p := &Parts{Demand: demand}
	for _, acct := range accounts {
		if !acct.balance.IsPositive() {
			continue
		}
		rate := l.rateAt(acct, at)
		balance := exchangeCalc(acct.balance, rate.Rate, one)
		p.Total = p.Total.Add(balance)
		p.Parts = append(p.Parts, Part{
			Account: acct.Ref(),
			Balance: balance,
			Rate:    rate.Rate,
		})
	}
	if p.Total.LessThan(demand) {
		return nil, fmt.Errorf("build parts: candidates hold %s, demand is %s: %w",
			p.Total, demand, ErrInsufficientFunds)
	}

	// Proportional split, truncated to cents; each share capped at its
	// balance.
	allocated := decimal.Zero
	for i := range p.Parts {
		share := demand.Mul(p.Parts[i].Balance).Div(p.Total).RoundDown(2)
		if share.GreaterThan(p.Parts[i].Balance) {
			share = p.Parts[i].Balance
		}
		p.Parts[i].Amount = share
		allocated = allocated.Add(share)
	}
	// Hand the truncation remainder to the last candidates that still have
	// room, starting from the end so the assignment is deterministic.
	deficit := demand.Sub(allocated)
	for i := len(p.Parts) - 1; i >= 0 && deficit.IsPositive(); i-- {
		room := p.Parts[i].Balance.Sub(p.Parts[i].Amount)
		extra := decimal.Min(room, deficit)
		p.Parts[i].Amount = p.Parts[i].Amount.Add(extra)
		deficit = deficit.Sub(extra)
	}
	return p, nil
}

// CheckParts validates a payment breakdown structurally: no negative share,
// no share exceeding its balance unless Exceed is set, and shares that sum
// exactly to the demand (at cent precision). Violations fail with
// ErrInvalidParts.
func (l *Ledger) CheckParts(p *Parts) error {
	if p == nil {
		return fmt.Errorf("nil parts: %w", ErrInvalidParts)
	}
	sum := decimal.Zero
	for _, part := range p.Parts {
		if part.Amount.IsNegative() {
			return fmt.Errorf("part for %v is negative: %w", part.Account, ErrInvalidParts)
		}
		if !p.Exceed {
			if !part.Balance.IsPositive() {
				return fmt.Errorf("part for %v has no balance: %w", part.Account, ErrInvalidParts)
			}
			if part.Amount.GreaterThan(part.Balance) {
				return fmt.Errorf("part for %v exceeds its balance: %w", part.Account, ErrInvalidParts)
			}
		}
		sum = sum.Add(part.Amount)
	}
	if !sum.Round(2).Equal(p.Demand.Round(2)) {
		return fmt.Errorf("parts sum to %s, demand is %s: %w", sum, p.Demand, ErrInvalidParts)
	}
	return nil
}
