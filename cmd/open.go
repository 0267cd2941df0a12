package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
)

// openCmd holds the flags for the 'open' subcommand.
type openCmd struct {
	account string
	date    string
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "create an account" }
func (*openCmd) Usage() string {
	return `zkt open -account <name> [-d <date>]

  Creates an empty account. Accounts are also created implicitly by the
  first track or transfer that mentions them; open is the explicit form.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name")
	f.StringVar(&c.date, "d", "", "Creation date (defaults to now)")
}

func (c *openCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return usagef("-account is required")
	}
	at, err := parseDate(c.date)
	if err != nil {
		return usagef("%v", err)
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	acct, err := l.Open(zakat.ByName(c.account), at)
	if err != nil {
		return errorf("%v", err)
	}
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	fmt.Printf("Opened account %s (#%d)\n", acct.Name(), acct.ID())
	return subcommands.ExitSuccess
}
