package zakat

import (
	"bytes"
	"testing"

	"github.com/vzool/zakat/daytime"
)

// populated builds a vault exercising every persisted structure.
func populated(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	logKey := mustTrack(t, l, "1000", "pocket", "2022-01-01")
	mustTrack(t, l, "10", "gold", "2022-02-01")
	if _, err := l.Exchange(ByName("gold"), dec(t, "70"), daytime.MustParse("2022-02-01"), "bullion desk"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.Subtract(dec(t, "100"), "groceries", ByName("pocket"), daytime.MustParse("2022-03-01")); err != nil {
		t.Fatal(err)
	}
	if err := l.SetHidden(ByName("gold"), true, daytime.MustParse("2022-03-02")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddFile(ByName("pocket"), logKey, "receipts/salary.pdf"); err != nil {
		t.Fatal(err)
	}
	report := checkAt(t, l, "2023-01-01")
	if err := l.Apply(report, nil, daytime.MustParse("2023-01-01")); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestVaultRoundTrip(t *testing.T) {
	l := populated(t)

	var first bytes.Buffer
	if err := EncodeVault(&first, l); err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeVault(&first)
	if err != nil {
		t.Fatal(err)
	}

	// a decoded vault encodes to the identical document
	var a, b bytes.Buffer
	if err := EncodeVault(&a, l); err != nil {
		t.Fatal(err)
	}
	if err := EncodeVault(&b, decoded); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("round trip drifted:\n%s\nvs\n%s", a.String(), b.String())
	}
}

func TestDecodePreservesSemantics(t *testing.T) {
	l := populated(t)
	var buf bytes.Buffer
	if err := EncodeVault(&buf, l); err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeVault(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if !mustBalance(t, decoded, "pocket").Equal(mustBalance(t, l, "pocket")) {
		t.Error("balance changed across the round trip")
	}
	gold, ok := decoded.Account(ByName("gold"))
	if !ok || !gold.Hidden() {
		t.Error("hidden flag lost")
	}
	rate := decoded.RateAt(ByName("gold"), daytime.MustParse("2022-06-01"))
	assertDecimal(t, rate.Rate, "70", "decoded rate")
	if decoded.History().Len() != l.History().Len() {
		t.Errorf("history steps %d, want %d", decoded.History().Len(), l.History().Len())
	}
	if len(decoded.Reports()) != 1 {
		t.Error("retained report lost")
	}
	for _, report := range decoded.Reports() {
		if !report.Applied() {
			t.Error("applied flag lost")
		}
	}

	// the decoded ledger keeps working
	mustTrack(t, decoded, "5", "pocket", "2023-06-01")
}

func TestDecodeForeignLock(t *testing.T) {
	l := NewLedger()
	if _, err := l.Lock(); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodeVault(&buf, l); err != nil {
		t.Fatal(err)
	}

	// another process decodes the locked vault
	decoded, err := DecodeVault(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Locked() {
		t.Fatal("persisted lock not honored")
	}
	if _, err := decoded.Track(dec(t, "1"), "", ByName("a"), daytime.Now()); err == nil {
		t.Error("foreign-locked vault accepted a mutation")
	}
	decoded.BreakLock()
	mustTrack(t, decoded, "1", "a", "2024-01-01")
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeVault(bytes.NewBufferString("{not json")); err == nil {
		t.Error("garbage accepted")
	}
	if _, err := DecodeVault(bytes.NewBufferString(`{"account":{"x":{}}}`)); err == nil {
		t.Error("non-numeric account key accepted")
	}
}

func TestExportReportIsStable(t *testing.T) {
	l := populated(t)
	var report *Report
	for _, r := range l.Reports() {
		report = r
	}

	var a, b bytes.Buffer
	if err := ExportReport(&a, report); err != nil {
		t.Fatal(err)
	}
	if err := ExportReport(&b, report); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("report export is not deterministic")
	}
	if !bytes.Contains(a.Bytes(), []byte(`"total_due"`)) {
		t.Errorf("export missing fields:\n%s", a.String())
	}
}
