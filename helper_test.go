package zakat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

// dec parses a decimal literal, failing the test on a typo.
func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func mustTrack(t *testing.T, l *Ledger, amount, account, at string) daytime.Time {
	t.Helper()
	key, err := l.Track(dec(t, amount), "test funds", ByName(account), daytime.MustParse(at))
	if err != nil {
		t.Fatalf("Track(%s, %s, %s): %v", amount, account, at, err)
	}
	return key
}

func mustBalance(t *testing.T, l *Ledger, account string) decimal.Decimal {
	t.Helper()
	b, err := l.Balance(ByName(account))
	if err != nil {
		t.Fatalf("Balance(%s): %v", account, err)
	}
	return b
}

// assertDecimal compares by numeric value, not internal representation.
func assertDecimal(t *testing.T, got decimal.Decimal, want string, context string) {
	t.Helper()
	if !got.Equal(dec(t, want)) {
		t.Errorf("%s = %s, want %s", context, got, want)
	}
}
