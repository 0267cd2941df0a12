package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vzool/zakat"
	"github.com/vzool/zakat/daytime"
)

func newTestLedger(t *testing.T) *zakat.Ledger {
	t.Helper()
	l := zakat.NewLedger()
	if _, err := l.Track(decimal.NewFromInt(1000), "salary", zakat.ByName("pocket"), daytime.MustParse("2024-01-15")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Track(decimal.NewFromInt(250), "gift", zakat.ByName("safe"), daytime.MustParse("2024-02-01")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.Subtract(decimal.NewFromInt(100), "groceries", zakat.ByName("pocket"), daytime.MustParse("2024-02-02")); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestBalancesMarkdown(t *testing.T) {
	l := newTestLedger(t)

	got := BalancesMarkdown(l, "", false)
	for _, want := range []string{"# Balances", "pocket", "safe", "900", "250", "2 accounts"} {
		if !strings.Contains(got, want) {
			t.Errorf("BalancesMarkdown missing %q in:\n%s", want, got)
		}
	}
}

func TestBalancesMarkdownHidesAccounts(t *testing.T) {
	l := newTestLedger(t)
	if err := l.SetHidden(zakat.ByName("safe"), true, daytime.MustParse("2024-02-03")); err != nil {
		t.Fatal(err)
	}

	got := BalancesMarkdown(l, "", false)
	if strings.Contains(got, "safe") {
		t.Errorf("hidden account rendered:\n%s", got)
	}
	got = BalancesMarkdown(l, "", true)
	if !strings.Contains(got, "safe") || !strings.Contains(got, "hidden") {
		t.Errorf("all view should render hidden account flagged:\n%s", got)
	}
}

func TestBoxesMarkdown(t *testing.T) {
	l := newTestLedger(t)
	acct, ok := l.Account(zakat.ByName("pocket"))
	if !ok {
		t.Fatal("pocket not found")
	}

	got := BoxesMarkdown(acct)
	for _, want := range []string{"# Boxes of pocket", "1000", "900", "never", "balance 900"} {
		if !strings.Contains(got, want) {
			t.Errorf("BoxesMarkdown missing %q in:\n%s", want, got)
		}
	}
}

func TestLogsMarkdown(t *testing.T) {
	l := newTestLedger(t)
	acct, ok := l.Account(zakat.ByName("pocket"))
	if !ok {
		t.Fatal("pocket not found")
	}

	got := LogsMarkdown(acct)
	for _, want := range []string{"# Logs of pocket", "salary", "groceries", "-100"} {
		if !strings.Contains(got, want) {
			t.Errorf("LogsMarkdown missing %q in:\n%s", want, got)
		}
	}
}

func TestDailyMarkdown(t *testing.T) {
	l := newTestLedger(t)

	got := DailyMarkdown(l.DailyLogs())
	for _, want := range []string{"# Daily Activity", "2024-01-15", "salary", "groceries", "-100"} {
		if !strings.Contains(got, want) {
			t.Errorf("DailyMarkdown missing %q in:\n%s", want, got)
		}
	}
	// most recent day first
	if strings.Index(got, "2024-02-02") > strings.Index(got, "2024-01-15") {
		t.Errorf("days not rendered most recent first:\n%s", got)
	}
}

func TestDailyMarkdownEmpty(t *testing.T) {
	got := DailyMarkdown(nil)
	if !strings.Contains(got, "No activity recorded.") {
		t.Errorf("empty rendering missing placeholder:\n%s", got)
	}
}

func TestReportMarkdown(t *testing.T) {
	l := newTestLedger(t)
	report, err := l.Check(zakat.CheckOptions{
		GramPrice: decimal.NewFromInt(1),
		Now:       daytime.MustParse("2026-01-15"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Valid {
		t.Fatalf("expected a valid report, got %+v", report)
	}

	got := ReportMarkdown(l, report)
	for _, want := range []string{"# Zakat Report", "due", "## Levy Plan", "pocket"} {
		if !strings.Contains(got, want) {
			t.Errorf("ReportMarkdown missing %q in:\n%s", want, got)
		}
	}
}

func TestPartsMarkdown(t *testing.T) {
	l := newTestLedger(t)
	parts, err := l.BuildParts(decimal.NewFromInt(50), daytime.MustParse("2024-03-01"))
	if err != nil {
		t.Fatal(err)
	}

	got := PartsMarkdown(parts)
	for _, want := range []string{"# Payment Distribution", "pocket", "safe", "50"} {
		if !strings.Contains(got, want) {
			t.Errorf("PartsMarkdown missing %q in:\n%s", want, got)
		}
	}
}
