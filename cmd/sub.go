package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
)

// subCmd holds the flags for the 'sub' subcommand.
type subCmd struct {
	account string
	desc    string
	date    string
}

func (*subCmd) Name() string     { return "sub" }
func (*subCmd) Synopsis() string { return "spend funds from an account, newest boxes first" }
func (*subCmd) Usage() string {
	return `zkt sub -account <name> [-desc <text>] [-d <date>] <amount>

  Deducts funds from an account. The newest boxes are consumed first so the
  oldest, most nearly mature funds are preserved. A shortfall is recorded as
  a debt box and the balance goes negative.
`
}

func (c *subCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name")
	f.StringVar(&c.desc, "desc", "", "Description of the spend")
	f.StringVar(&c.date, "d", "", "Date of the spend (defaults to now)")
}

func (c *subCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return usagef("-account is required")
	}
	amount, err := parseAmount(f)
	if err != nil {
		return usagef("%v", err)
	}
	at, err := parseDate(c.date)
	if err != nil {
		return usagef("%v", err)
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	_, deductions, err := l.Subtract(amount, c.desc, zakat.ByName(c.account), at)
	if err != nil {
		return errorf("%v", err)
	}
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	fmt.Printf("Subtracted %s from %s over %d box(es)\n", amount, c.account, len(deductions))
	return subcommands.ExitSuccess
}
