package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/daytime"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	outputFile string
	at         string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export an applied report as JSON" }
func (*exportCmd) Usage() string {
	return `zkt export [-o <file>] [-at <key>]

  Writes a retained assessment report as an indented JSON document, the most
  recently applied one by default. -at selects a specific report by its key
  as listed in the history.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "Output file (defaults to stdout)")
	f.StringVar(&c.at, "at", "", "Report key to export")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}
	reports := l.Reports()
	if len(reports) == 0 {
		return errorf("no reports retained in the vault")
	}

	var report *zakat.Report
	if c.at != "" {
		key, err := daytime.ParseKey(c.at)
		if err != nil {
			return usagef("%v", err)
		}
		report = reports[key]
		if report == nil {
			return errorf("no report at %s", c.at)
		}
	} else {
		var latest daytime.Time
		for t := range reports {
			latest = max(latest, t)
		}
		report = reports[latest]
	}

	out := os.Stdout
	if c.outputFile != "" {
		out, err = os.Create(c.outputFile)
		if err != nil {
			return errorf("%v", err)
		}
		defer out.Close()
	}
	if err := zakat.ExportReport(out, report); err != nil {
		return errorf("%v", err)
	}
	if c.outputFile != "" {
		fmt.Printf("Exported report to %s\n", c.outputFile)
	}
	return subcommands.ExitSuccess
}
