package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// unlockCmd holds the flags for the 'unlock' subcommand.
type unlockCmd struct{}

func (*unlockCmd) Name() string     { return "unlock" }
func (*unlockCmd) Synopsis() string { return "clear a stale advisory lock" }
func (*unlockCmd) Usage() string {
	return `zkt unlock

  Forcibly clears the vault's advisory lock. Only needed after a holder
  crashed without releasing it; make sure no other process is actually
  working on the vault first.
`
}

func (c *unlockCmd) SetFlags(f *flag.FlagSet) {}

func (c *unlockCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	if !l.Locked() {
		fmt.Println("Vault is not locked.")
		return subcommands.ExitSuccess
	}
	l.BreakLock()
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	fmt.Println("Lock cleared.")
	return subcommands.ExitSuccess
}
