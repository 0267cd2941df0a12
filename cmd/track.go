package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
)

// trackCmd holds the flags for the 'track' subcommand.
type trackCmd struct {
	account string
	desc    string
	date    string
}

func (*trackCmd) Name() string     { return "track" }
func (*trackCmd) Synopsis() string { return "record a deposit as a new dated box" }
func (*trackCmd) Usage() string {
	return `zkt track -account <name> [-desc <text>] [-d <date>] <amount>

  Records funds entering an account. The deposit becomes a box stamped with
  the given date; the stamp decides when the funds complete a hawl.

Usage Examples:
# Track this month's salary.
$ zkt track -account pocket -desc "salary" 1000

# Backfill an old deposit.
$ zkt track -account safe -d 2023-06-01 250
`
}

func (c *trackCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name")
	f.StringVar(&c.desc, "desc", "", "Description of the deposit")
	f.StringVar(&c.date, "d", "", "Date of the deposit (defaults to now)")
}

func (c *trackCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return usagef("-account is required")
	}
	amount, err := parseAmount(f)
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
	key, err := l.Track(amount, c.desc, zakat.ByName(c.account), at)
	if err != nil {
		return errorf("%v", err)
	}
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	fmt.Printf("Tracked %s into %s (box %s)\n", amount, c.account, key)
	return subcommands.ExitSuccess
}
