package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
)

// transferCmd holds the flags for the 'transfer' subcommand.
type transferCmd struct {
	from string
	to   string
	desc string
	date string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move funds between accounts, preserving box ages" }
func (*transferCmd) Usage() string {
	return `zkt transfer -from <name> -to <name> [-desc <text>] [-d <date>] <amount>

  Moves funds from one account to another. The boxes consumed on the source
  side arrive on the destination side with their original age stamps, so a
  transfer never restarts a hawl. Amounts are converted through both
  accounts' exchange rates at the transfer date.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source account name")
	f.StringVar(&c.to, "to", "", "Destination account name")
	f.StringVar(&c.desc, "desc", "", "Description of the transfer")
	f.StringVar(&c.date, "d", "", "Date of the transfer (defaults to now)")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" {
		return usagef("-from and -to are required")
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
	keys, err := l.Transfer(amount, zakat.ByName(c.from), zakat.ByName(c.to), c.desc, at)
	if err != nil {
		return errorf("%v", err)
	}
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	fmt.Printf("Transferred %s from %s to %s across %d box(es)\n", amount, c.from, c.to, len(keys))
	return subcommands.ExitSuccess
}
