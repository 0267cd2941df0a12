package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/vzool/zakat/renderer"
)

// balanceCmd holds the flags for the 'balance' subcommand.
type balanceCmd struct {
	all      bool
	currency string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display every account's balance" }
func (*balanceCmd) Usage() string {
	return `zkt balance [-all] [-currency <code>]

  Displays the balances of all visible accounts. -all includes hidden ones.
  -currency formats amounts as money in the given ISO code.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include hidden accounts")
	f.StringVar(&c.currency, "currency", "", "Format balances in this currency")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	printMarkdown(renderer.BalancesMarkdown(l, c.currency, c.all))
	return subcommands.ExitSuccess
}
