package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// statsCmd holds the flags for the 'stats' subcommand.
type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display a census of the vault" }
func (*statsCmd) Usage() string {
	return `zkt stats

  Counts the accounts, boxes, log entries, exchange rates, history steps
  and retained reports in the vault.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {}

func (c *statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	s := l.Stats()
	fmt.Printf("accounts: %d\n", s.Accounts)
	fmt.Printf("boxes:    %d\n", s.Boxes)
	fmt.Printf("logs:     %d\n", s.Logs)
	fmt.Printf("rates:    %d\n", s.Rates)
	fmt.Printf("steps:    %d\n", s.Steps)
	fmt.Printf("reports:  %d\n", s.Reports)
	return subcommands.ExitSuccess
}
