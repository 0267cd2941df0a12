package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/daytime"
)

// attachCmd holds the flags for the 'attach' subcommand.
type attachCmd struct {
	account string
	log     string
	remove  string
}

func (*attachCmd) Name() string     { return "attach" }
func (*attachCmd) Synopsis() string { return "attach a document reference to a log entry" }
func (*attachCmd) Usage() string {
	return `zkt attach -account <name> -log <key> <path>
zkt attach -account <name> -log <key> -remove <file-key>

  Attaches a document path (a receipt, an invoice) to a log entry, or
  removes a previous attachment. The vault stores the reference only, not
  the document itself.
`
}

func (c *attachCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name")
	f.StringVar(&c.log, "log", "", "Log entry key, as shown in the history")
	f.StringVar(&c.remove, "remove", "", "File key to remove instead of attaching")
}

func (c *attachCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.log == "" {
		return usagef("-account and -log are required")
	}
	logKey, err := daytime.ParseKey(c.log)
	if err != nil {
		return usagef("%v", err)
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}

	if c.remove != "" {
		fileKey, err := daytime.ParseKey(c.remove)
		if err != nil {
			return usagef("%v", err)
		}
		if !l.RemoveFile(zakat.ByName(c.account), logKey, fileKey) {
			return errorf("no such attachment %s on %s", c.remove, c.account)
		}
		if err := EncodeLedger(l); err != nil {
			return errorf("could not save vault: %v", err)
		}
		fmt.Printf("Removed attachment %s\n", c.remove)
		return subcommands.ExitSuccess
	}

	if f.NArg() != 1 {
		return usagef("expected exactly one path argument, got %d", f.NArg())
	}
	key, err := l.AddFile(zakat.ByName(c.account), logKey, f.Arg(0))
	if err != nil {
		return errorf("%v", err)
	}
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	fmt.Printf("Attached %s (key %s)\n", f.Arg(0), key.Key())
	return subcommands.ExitSuccess
}
