package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/daytime"
)

// renameCmd holds the flags for the 'rename' subcommand.
type renameCmd struct {
	account string
	to      string
}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename an account" }
func (*renameCmd) Usage() string {
	return `zkt rename -account <name> -to <name>

  Gives the account a new name. The old name stops resolving; boxes, logs
  and rates are untouched.
`
}

func (c *renameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Current account name")
	f.StringVar(&c.to, "to", "", "New account name")
}

func (c *renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.to == "" {
		return usagef("-account and -to are required")
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	if err := l.Rename(zakat.ByName(c.account), c.to, daytime.Now()); err != nil {
		return errorf("%v", err)
	}
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	fmt.Printf("Renamed %s to %s\n", c.account, c.to)
	return subcommands.ExitSuccess
}
