package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/renderer"
)

// logsCmd holds the flags for the 'logs' subcommand.
type logsCmd struct {
	account string
}

func (*logsCmd) Name() string     { return "logs" }
func (*logsCmd) Synopsis() string { return "display an account's log entries" }
func (*logsCmd) Usage() string {
	return `zkt logs -account <name>

  Displays every log entry of the account, oldest first, with the box each
  debit came out of and the number of attached files.
`
}

func (c *logsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name")
}

func (c *logsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.LogsMarkdown(acct))
	return subcommands.ExitSuccess
}
