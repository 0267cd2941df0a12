package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/daytime"
)

// zakatableCmd holds the flags for the 'zakatable' subcommand.
type zakatableCmd struct {
	account string
	off     bool
}

func (*zakatableCmd) Name() string     { return "zakatable" }
func (*zakatableCmd) Synopsis() string { return "include or exempt an account from assessment" }
func (*zakatableCmd) Usage() string {
	return `zkt zakatable -account <name> [-off]

  Marks the account as subject to zakat assessment. Accounts are zakatable
  by default; -off exempts one, for funds held on behalf of others or
  otherwise outside the obligation.
`
}

func (c *zakatableCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name")
	f.BoolVar(&c.off, "off", false, "Exempt the account instead")
}

func (c *zakatableCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return usagef("-account is required")
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	if err := l.SetZakatable(zakat.ByName(c.account), !c.off, daytime.Now()); err != nil {
		return errorf("%v", err)
	}
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	if c.off {
		fmt.Printf("Account %s is exempt from assessment\n", c.account)
	} else {
		fmt.Printf("Account %s is subject to assessment\n", c.account)
	}
	return subcommands.ExitSuccess
}
