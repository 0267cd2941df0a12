package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/vzool/zakat"
)

// exchangeCmd holds the flags for the 'exchange' subcommand.
type exchangeCmd struct {
	account string
	rate    string
	desc    string
	date    string
}

func (*exchangeCmd) Name() string     { return "exchange" }
func (*exchangeCmd) Synopsis() string { return "record an exchange rate for an account" }
func (*exchangeCmd) Usage() string {
	return `zkt exchange -account <name> -rate <rate> [-desc <text>] [-d <date>]

  Records the value of one unit of the account in the valuation currency,
  effective from the given date. Lookups at any instant use the most recent
  rate at or before it; an account with no rate counts at 1.
`
}

func (c *exchangeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name")
	f.StringVar(&c.rate, "rate", "", "Value of one account unit in the valuation currency")
	f.StringVar(&c.desc, "desc", "", "Description of the rate source")
	f.StringVar(&c.date, "d", "", "Effective date (defaults to now)")
}

func (c *exchangeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.rate == "" {
		return usagef("-account and -rate are required")
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		return usagef("invalid rate %q: %v", c.rate, err)
	}
	at, err := parseDate(c.date)
	if err != nil {
		return usagef("%v", err)
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	record, err := l.Exchange(zakat.ByName(c.account), rate, at, c.desc)
	if err != nil {
		return errorf("%v", err)
	}
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	fmt.Printf("Recorded rate %s for %s effective %s\n", record.Rate, c.account, record.Time)
	return subcommands.ExitSuccess
}
