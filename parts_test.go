package zakat

import (
	"errors"
	"testing"

	"github.com/vzool/zakat/daytime"
)

func TestBuildPartsProportionalSplit(t *testing.T) {
	l := NewLedger()
	mustTrack(t, l, "300", "a", "2024-01-01")
	mustTrack(t, l, "100", "b", "2024-01-01")

	p, err := l.BuildParts(dec(t, "100"), daytime.MustParse("2024-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Parts) != 2 {
		t.Fatalf("parts = %+v, want 2", p.Parts)
	}
	assertDecimal(t, p.Total, "400", "total available")
	assertDecimal(t, p.Parts[0].Amount, "75", "share of a")
	assertDecimal(t, p.Parts[1].Amount, "25", "share of b")
	if err := l.CheckParts(p); err != nil {
		t.Errorf("built parts do not validate: %v", err)
	}
}

func TestBuildPartsRemainderLandsOnLast(t *testing.T) {
	l := NewLedger()
	mustTrack(t, l, "100", "a", "2024-01-01")
	mustTrack(t, l, "100", "b", "2024-01-01")
	mustTrack(t, l, "100", "c", "2024-01-01")

	p, err := l.BuildParts(dec(t, "100"), daytime.MustParse("2024-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	sum := dec(t, "0")
	for _, part := range p.Parts {
		sum = sum.Add(part.Amount)
	}
	assertDecimal(t, sum, "100", "shares sum")
	// 100/3 truncates to 33.33 each; the last share absorbs the cents.
	assertDecimal(t, p.Parts[2].Amount, "33.34", "last share")
}

func TestBuildPartsSkipsEmptyAndUsesRates(t *testing.T) {
	l := NewLedger()
	mustTrack(t, l, "10", "gold", "2024-01-01")
	if _, err := l.Exchange(ByName("gold"), dec(t, "70"), daytime.MustParse("2024-01-01"), ""); err != nil {
		t.Fatal(err)
	}
	l.Open(ByName("empty"), daytime.MustParse("2024-01-01"))

	p, err := l.BuildParts(dec(t, "350"), daytime.MustParse("2024-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Parts) != 1 {
		t.Fatalf("parts = %+v, want only the funded account", p.Parts)
	}
	assertDecimal(t, p.Parts[0].Balance, "700", "converted balance")
	assertDecimal(t, p.Parts[0].Amount, "350", "share in valuation currency")
}

func TestBuildPartsInsufficient(t *testing.T) {
	l := NewLedger()
	mustTrack(t, l, "50", "a", "2024-01-01")
	_, err := l.BuildParts(dec(t, "100"), daytime.MustParse("2024-02-01"))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("error = %v, want ErrInsufficientFunds", err)
	}
}

func TestBuildPartsUnknownCandidate(t *testing.T) {
	l := NewLedger()
	_, err := l.BuildParts(dec(t, "10"), daytime.Now(), ByName("nobody"))
	if !errors.Is(err, ErrUnknownAccount) {
		t.Errorf("error = %v, want ErrUnknownAccount", err)
	}
}

func TestCheckPartsViolations(t *testing.T) {
	l := NewLedger()

	cases := []struct {
		name  string
		parts *Parts
	}{
		{"nil parts", nil},
		{"negative share", &Parts{
			Demand: dec(t, "10"),
			Parts:  []Part{{Account: ByName("a"), Balance: dec(t, "100"), Amount: dec(t, "-10")}},
		}},
		{"share exceeds balance", &Parts{
			Demand: dec(t, "10"),
			Parts:  []Part{{Account: ByName("a"), Balance: dec(t, "5"), Amount: dec(t, "10")}},
		}},
		{"sum does not meet demand", &Parts{
			Demand: dec(t, "10"),
			Parts:  []Part{{Account: ByName("a"), Balance: dec(t, "100"), Amount: dec(t, "7")}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := l.CheckParts(tc.parts); !errors.Is(err, ErrInvalidParts) {
				t.Errorf("error = %v, want ErrInvalidParts", err)
			}
		})
	}
}

func TestCheckPartsExceedAllowsOverdraft(t *testing.T) {
	l := NewLedger()
	p := &Parts{
		Demand: dec(t, "10"),
		Exceed: true,
		Parts:  []Part{{Account: ByName("a"), Balance: dec(t, "5"), Amount: dec(t, "10")}},
	}
	if err := l.CheckParts(p); err != nil {
		t.Errorf("exceeding part rejected despite Exceed: %v", err)
	}
}
