package zakat

import (
	"strings"
	"testing"
)

func TestMoneyString(t *testing.T) {
	cases := []struct {
		value float64
		cur   string
		want  string
	}{
		{1234.56, "USD", "$1,234.56"},
		{-12.5, "USD", "-$12.50"},
		{1000, "EUR", "€1.000,00"},
	}
	for _, tc := range cases {
		got := M(tc.value, tc.cur).String()
		if got != tc.want {
			t.Errorf("M(%v, %s).String() = %q, want %q", tc.value, tc.cur, got, tc.want)
		}
	}
}

func TestMoneySignedString(t *testing.T) {
	if got := M(0, "USD").SignedString(); got != "-" {
		t.Errorf("zero = %q, want -", got)
	}
	if got := M(5, "USD").SignedString(); !strings.HasPrefix(got, "+") {
		t.Errorf("positive = %q, want a + prefix", got)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := M(10, "USD")
	b := M(2.5, "USD")
	if got := a.Sub(b); !got.Equal(M(7.5, "USD")) {
		t.Errorf("10 - 2.5 = %v", got.Amount())
	}
	if got := a.Add(b.Neg()); !got.Equal(M(7.5, "USD")) {
		t.Errorf("10 + (-2.5) = %v", got.Amount())
	}
	// the empty currency is weak and adopts the other side's
	if got := M(1, "").Add(M(1, "USD")); got.Currency() != "USD" {
		t.Errorf("weak currency = %q, want USD", got.Currency())
	}
}

func TestMoneyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding USD to EUR did not panic")
		}
	}()
	M(1, "USD").Add(M(1, "EUR"))
}
