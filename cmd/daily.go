package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/vzool/zakat/renderer"
)

// dailyCmd holds the flags for the 'daily' subcommand.
type dailyCmd struct{}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display day-by-day vault activity" }
func (*dailyCmd) Usage() string {
	return `zkt daily

  Displays every day's credits, debits and individual movements, most
  recent day first.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {}

func (c *dailyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	printMarkdown(renderer.DailyMarkdown(l.DailyLogs()))
	return subcommands.ExitSuccess
}
