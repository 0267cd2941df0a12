package zakat

import (
	"errors"
	"testing"

	"github.com/vzool/zakat/daytime"
)

func TestExchangeRejectsNonPositive(t *testing.T) {
	l := NewLedger()
	for _, rate := range []string{"0", "-1.5"} {
		if _, err := l.Exchange(ByName("gold"), dec(t, rate), daytime.Now(), ""); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("Exchange(%s) error = %v, want ErrInvalidRate", rate, err)
		}
	}
}

func TestRateAtResolvesPredecessor(t *testing.T) {
	l := NewLedger()
	t10 := daytime.MustParse("2024-01-10")
	t20 := daytime.MustParse("2024-01-20")
	if _, err := l.Exchange(ByName("gold"), dec(t, "2"), t10, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Exchange(ByName("gold"), dec(t, "3"), t20, ""); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		at   string
		want string
	}{
		{"before any record", "2024-01-05", "1"},
		{"exactly on a record", "2024-01-10", "2"},
		{"between records", "2024-01-15", "2"},
		{"after the last record", "2024-01-25", "3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := l.RateAt(ByName("gold"), daytime.MustParse(tc.at))
			assertDecimal(t, got.Rate, tc.want, "rate")
		})
	}
}

func TestRateAtUnknownAccountIsIdentity(t *testing.T) {
	l := NewLedger()
	got := l.RateAt(ByName("nobody"), daytime.Now())
	assertDecimal(t, got.Rate, "1", "identity rate")
}

func TestRatesAreSortedRegardlessOfRecordOrder(t *testing.T) {
	l := NewLedger()
	// recorded out of order
	for _, rec := range []struct{ at, rate string }{
		{"2024-03-01", "3"},
		{"2024-01-01", "1.5"},
		{"2024-02-01", "2"},
	} {
		if _, err := l.Exchange(ByName("gold"), dec(t, rec.rate), daytime.MustParse(rec.at), ""); err != nil {
			t.Fatal(err)
		}
	}
	records := l.Rates(ByName("gold"))
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Time.Before(records[i-1].Time) {
			t.Fatalf("records out of order: %v", records)
		}
	}
	got := l.RateAt(ByName("gold"), daytime.MustParse("2024-02-15"))
	assertDecimal(t, got.Rate, "2", "rate between records")
}

func TestExchangeCalc(t *testing.T) {
	cases := []struct {
		x, xRate, yRate, want string
	}{
		{"10", "2", "1", "20"}, // into the valuation currency
		{"20", "1", "2", "10"}, // out of the valuation currency
		{"10", "3", "3", "10"}, // same unit both sides
		{"7", "1.5", "0.5", "21"},
	}
	for _, tc := range cases {
		got := exchangeCalc(dec(t, tc.x), dec(t, tc.xRate), dec(t, tc.yRate))
		assertDecimal(t, got, tc.want, "exchangeCalc")
	}
}
