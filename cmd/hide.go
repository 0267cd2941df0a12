package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/daytime"
)

// hideCmd holds the flags for the 'hide' subcommand.
type hideCmd struct {
	account string
	off     bool
}

func (*hideCmd) Name() string     { return "hide" }
func (*hideCmd) Synopsis() string { return "hide an account from reports" }
func (*hideCmd) Usage() string {
	return `zkt hide -account <name> [-off]

  Hides the account from balances and wealth reports. The account keeps
  participating in internal accounting. -off makes it visible again.
`
}

func (c *hideCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name")
	f.BoolVar(&c.off, "off", false, "Unhide instead")
}

func (c *hideCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return usagef("-account is required")
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	if err := l.SetHidden(zakat.ByName(c.account), !c.off, daytime.Now()); err != nil {
		return errorf("%v", err)
	}
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	if c.off {
		fmt.Printf("Account %s is visible again\n", c.account)
	} else {
		fmt.Printf("Account %s is now hidden\n", c.account)
	}
	return subcommands.ExitSuccess
}
