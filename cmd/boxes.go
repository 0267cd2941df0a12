package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/renderer"
)

// boxesCmd holds the flags for the 'boxes' subcommand.
type boxesCmd struct {
	account string
}

func (*boxesCmd) Name() string     { return "boxes" }
func (*boxesCmd) Synopsis() string { return "display an account's boxes" }
func (*boxesCmd) Usage() string {
	return `zkt boxes -account <name>

  Displays every box of the account, oldest first, with the remaining
  funds and the zakat levies taken so far.
`
}

func (c *boxesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name")
}

func (c *boxesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return usagef("-account is required")
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	acct, ok := l.Account(zakat.ByName(c.account))
	if !ok {
		return errorf("unknown account %q", c.account)
	}
	printMarkdown(renderer.BoxesMarkdown(acct))
	return subcommands.ExitSuccess
}
