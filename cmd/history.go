package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	last int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the audit history" }
func (*historyCmd) Usage() string {
	return `zkt history [-last <n>]

  Displays the recorded steps, one per past operation, with the individual
  events each one caused. -last limits the output to the n most recent.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.last, "last", 0, "Only show the n most recent steps")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	steps := l.History().Steps()
	if c.last > 0 && c.last < len(steps) {
		steps = steps[len(steps)-c.last:]
	}
	if len(steps) == 0 {
		fmt.Println("No history recorded.")
		return subcommands.ExitSuccess
	}
	for _, step := range steps {
		fmt.Printf("%s\n", step.Time)
		for _, e := range step.Events {
			fmt.Printf("  %s", e.Action)
			if e.Account != 0 {
				fmt.Printf(" %s", accountLabel(l, e.Account))
			}
			if !e.Value.IsZero() {
				fmt.Printf(" %s", e.Value)
			}
			if e.Key != "" {
				fmt.Printf(" %s", e.Key)
			}
			if !e.Ref.IsZero() {
				fmt.Printf(" @%s", e.Ref)
			}
			fmt.Println()
		}
	}
	return subcommands.ExitSuccess
}

func accountLabel(l *zakat.Ledger, id int64) string {
	if acct, ok := l.Account(zakat.ByID(id)); ok && acct.Name() != "" {
		return acct.Name()
	}
	return fmt.Sprintf("#%d", id)
}
