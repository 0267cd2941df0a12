package zakat

import (
	"strings"
	"testing"

	"github.com/vzool/zakat/daytime"
)

const sampleCSV = `pocket,salary,1000,2024-01-15
pocket,groceries,-100,2024-01-20
gold,bullion,10,2024-02-01,70
`

func TestImportCSV(t *testing.T) {
	l := NewLedger()
	res, err := l.ImportCSV(strings.NewReader(sampleCSV), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Created != 3 || res.Found != 0 || len(res.Bad) != 0 {
		t.Fatalf("result = %+v, want 3 created", res)
	}

	assertDecimal(t, mustBalance(t, l, "pocket"), "900", "pocket balance")
	assertDecimal(t, mustBalance(t, l, "gold"), "10", "gold balance")
	rate := l.RateAt(ByName("gold"), daytime.MustParse("2024-02-01"))
	assertDecimal(t, rate.Rate, "70", "imported rate")
}

func TestImportCSVDeduplicates(t *testing.T) {
	l := NewLedger()
	cache := ImportCache{}
	if _, err := l.ImportCSV(strings.NewReader(sampleCSV), cache); err != nil {
		t.Fatal(err)
	}

	// the same file again, with one new row appended
	amended := sampleCSV + "pocket,bonus,50,2024-03-01\n"
	res, err := l.ImportCSV(strings.NewReader(amended), cache)
	if err != nil {
		t.Fatal(err)
	}
	if res.Created != 1 || res.Found != 3 {
		t.Fatalf("result = %+v, want 1 created 3 found", res)
	}
	assertDecimal(t, mustBalance(t, l, "pocket"), "950", "balance after amended re-import")
}

func TestImportCSVReportsBadRows(t *testing.T) {
	l := NewLedger()
	bad := `pocket,ok,100,2024-01-15
pocket,bad value,not-a-number,2024-01-16
pocket,bad date,100,someday
pocket,short row
`
	res, err := l.ImportCSV(strings.NewReader(bad), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Created != 1 {
		t.Errorf("created = %d, want the one good row", res.Created)
	}
	for _, row := range []int{2, 3, 4} {
		if res.Bad[row] == nil {
			t.Errorf("row %d not rejected: %+v", row, res.Bad)
		}
	}
	// good rows are kept even when later rows fail
	assertDecimal(t, mustBalance(t, l, "pocket"), "100", "balance")
}

const sampleJSON = `{
  "meta": {"source": "legacy app"},
  "transactions": [
    {"wallet": "pocket", "note": "salary", "amount": 1000, "date": "2024-01-15"},
    {"wallet": "pocket", "note": "groceries", "amount": -100, "date": "2024-01-20"},
    {"wallet": "gold", "note": "bullion", "amount": 10, "date": "2024-02-01", "rate": 70}
  ]
}`

func TestImportJSON(t *testing.T) {
	l := NewLedger()
	mapping := ForeignMapping{
		Rows:    "$.transactions",
		Account: "$.wallet",
		Desc:    "$.note",
		Value:   "$.amount",
		Time:    "$.date",
	}
	res, err := l.ImportJSON(strings.NewReader(sampleJSON), mapping, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Created != 3 || len(res.Bad) != 0 {
		t.Fatalf("result = %+v (bad: %v), want 3 created", res, res.Bad)
	}
	assertDecimal(t, mustBalance(t, l, "pocket"), "900", "pocket balance")
}

func TestImportJSONWithRate(t *testing.T) {
	l := NewLedger()
	mapping := ForeignMapping{
		Rows:    "$.transactions",
		Account: "$.wallet",
		Value:   "$.amount",
		Time:    "$.date",
		Rate:    "$.rate",
	}
	res, err := l.ImportJSON(strings.NewReader(sampleJSON), mapping, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Bad) != 0 {
		t.Fatalf("bad rows: %v", res.Bad)
	}
	rate := l.RateAt(ByName("gold"), daytime.MustParse("2024-02-01"))
	assertDecimal(t, rate.Rate, "70", "imported rate")
}

func TestImportJSONBadRowsPath(t *testing.T) {
	l := NewLedger()
	mapping := ForeignMapping{Rows: "$.nope", Account: "$.a", Value: "$.v", Time: "$.t"}
	if _, err := l.ImportJSON(strings.NewReader(sampleJSON), mapping, nil); err == nil {
		t.Error("missing rows path accepted")
	}
}
