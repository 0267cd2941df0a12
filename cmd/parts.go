package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/renderer"
)

// partsCmd holds the flags for the 'parts' subcommand.
type partsCmd struct {
	accounts string
	date     string
}

func (*partsCmd) Name() string     { return "parts" }
func (*partsCmd) Synopsis() string { return "preview a payment distribution" }
func (*partsCmd) Usage() string {
	return `zkt parts [-accounts <acct,acct,...>] [-d <date>] <amount>

  Shows how a payment of the given amount would be split over the accounts,
  proportionally to their balances in the valuation currency. With no
  -accounts every zakatable account is a candidate. Nothing is changed.
`
}

func (c *partsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.accounts, "accounts", "", "Comma separated candidate accounts")
	f.StringVar(&c.date, "d", "", "Valuation date (defaults to now)")
}

func (c *partsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	demand, err := parseAmount(f)
	if err != nil {
		return usagef("%v", err)
	}
	at, err := parseDate(c.date)
	if err != nil {
		return usagef("%v", err)
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	var candidates []zakat.Ref
	if c.accounts != "" {
		for _, name := range strings.Split(c.accounts, ",") {
			candidates = append(candidates, zakat.ByName(strings.TrimSpace(name)))
		}
	}
	parts, err := l.BuildParts(demand, at, candidates...)
	if err != nil {
		return errorf("%v", err)
	}
	printMarkdown(renderer.PartsMarkdown(parts))
	return subcommands.ExitSuccess
}
