package cmd

import (
	"flag"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

// parseDate turns the -d flag into an instant, defaulting to now.
func parseDate(s string) (daytime.Time, error) {
	if s == "" {
		return daytime.Now(), nil
	}
	return daytime.Parse(s)
}

// parseAmount reads the single positional amount argument.
func parseAmount(f *flag.FlagSet) (decimal.Decimal, error) {
	if f.NArg() != 1 {
		return decimal.Zero, fmt.Errorf("expected exactly one amount argument, got %d", f.NArg())
	}
	amount, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", f.Arg(0), err)
	}
	return amount, nil
}
