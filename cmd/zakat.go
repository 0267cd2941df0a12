package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/renderer"
)

// zakatCmd holds the flags for the 'zakat' subcommand.
type zakatCmd struct {
	assess assessFlags
	parts  string
}

func (*zakatCmd) Name() string     { return "zakat" }
func (*zakatCmd) Synopsis() string { return "assess the vault and apply the levy" }
func (*zakatCmd) Usage() string {
	return `zkt zakat -gram-price <price> [-parts <acct,acct,...>] [assessment flags]

  Runs an assessment and, when something is due, applies it immediately.
  By default each assessed box pays its own due; with -parts the total due
  is paid proportionally from the listed accounts instead.
`
}

func (c *zakatCmd) SetFlags(f *flag.FlagSet) {
	c.assess.set(f)
	f.StringVar(&c.parts, "parts", "", "Comma separated accounts to pay from")
}

func (c *zakatCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.assess.gramPrice == "" {
		return usagef("-gram-price is required")
	}
	opts, err := c.assess.options()
	if err != nil {
		return usagef("%v", err)
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	report, err := l.Check(opts)
	if err != nil {
		return errorf("%v", err)
	}
	if !report.Valid {
		printMarkdown(renderer.ReportMarkdown(l, report))
		fmt.Println("Nothing due, vault unchanged.")
		return subcommands.ExitSuccess
	}

	var parts *zakat.Parts
	if c.parts != "" {
		var candidates []zakat.Ref
		for _, name := range strings.Split(c.parts, ",") {
			candidates = append(candidates, zakat.ByName(strings.TrimSpace(name)))
		}
		parts, err = l.BuildParts(report.TotalDue, opts.Now, candidates...)
		if err != nil {
			return errorf("%v", err)
		}
	}

	if err := l.Apply(report, parts, opts.Now); err != nil {
		return errorf("%v", err)
	}
	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	printMarkdown(renderer.ReportMarkdown(l, report))
	if parts != nil {
		printMarkdown(renderer.PartsMarkdown(parts))
	}
	fmt.Printf("Applied levy of %s\n", report.TotalDue)
	return subcommands.ExitSuccess
}
