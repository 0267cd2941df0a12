package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/daytime"
	"github.com/vzool/zakat/renderer"
)

// assessFlags are the flags shared by the 'check' and 'zakat' subcommands.
type assessFlags struct {
	gramPrice    string
	gramQuantity string
	rate         string
	cycleDays    int
	date         string
}

func (a *assessFlags) set(f *flag.FlagSet) {
	f.StringVar(&a.gramPrice, "gram-price", "", "Price of one gram of silver in the valuation currency")
	f.StringVar(&a.gramQuantity, "gram-quantity", "", "Grams of silver making up the nisab (default 595)")
	f.StringVar(&a.rate, "rate", "", "Fraction levied per cycle (default 0.025)")
	f.IntVar(&a.cycleDays, "cycle-days", 0, "Days in one hawl cycle (default 355)")
	f.StringVar(&a.date, "d", "", "Assessment date (defaults to now)")
}

func (a *assessFlags) options() (zakat.CheckOptions, error) {
	var opts zakat.CheckOptions
	var err error
	if opts.GramPrice, err = decimal.NewFromString(a.gramPrice); err != nil {
		return opts, err
	}
	if a.gramQuantity != "" {
		if opts.GramQuantity, err = decimal.NewFromString(a.gramQuantity); err != nil {
			return opts, err
		}
	}
	if a.rate != "" {
		if opts.Rate, err = decimal.NewFromString(a.rate); err != nil {
			return opts, err
		}
	}
	if a.cycleDays > 0 {
		opts.Cycle = daytime.Cycle(a.cycleDays)
	}
	if opts.Now, err = parseDate(a.date); err != nil {
		return opts, err
	}
	return opts, nil
}

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	assess assessFlags
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "assess the vault without changing it" }
func (*checkCmd) Usage() string {
	return `zkt check -gram-price <price> [-gram-quantity <g>] [-rate <r>] [-cycle-days <n>] [-d <date>]

  Assesses every zakatable account and reports what a levy at the given
  date would take, box by box. Checking never mutates the vault; use
  'zkt zakat' to actually apply a levy.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) { c.assess.set(f) }

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.ReportMarkdown(l, report))
	return subcommands.ExitSuccess
}
