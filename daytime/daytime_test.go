package daytime

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"bare date", "1988-06-30", time.Date(1988, 6, 30, 0, 0, 0, 0, time.UTC)},
		{"date and time", "2024-01-02 03:04:05", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"tee separator", "2024-01-02T03:04:05", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"rfc3339", "2024-01-02T03:04:05Z", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
			}
			if got != N(tc.want) {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, N(tc.want))
			}
		})
	}

	if _, err := Parse("not a date"); err == nil {
		t.Error("Parse of garbage should fail")
	}
}

func TestKeyRoundTrip(t *testing.T) {
	now := Now()
	got, err := ParseKey(now.Key())
	if err != nil {
		t.Fatalf("ParseKey(%q) returned error: %v", now.Key(), err)
	}
	if got != now {
		t.Errorf("ParseKey(Key()) = %v, want %v", got, now)
	}
}

func TestDay(t *testing.T) {
	at := MustParse("2024-05-17T13:37:42Z")
	want := MustParse("2024-05-17")
	if at.Day() != want {
		t.Errorf("Day() = %v, want %v", at.Day(), want)
	}
	if at.Weekday() != time.Friday {
		t.Errorf("Weekday() = %v, want Friday", at.Weekday())
	}
}

func TestCycle(t *testing.T) {
	if Cycle(DefaultCycleDays) != 355*24*time.Hour {
		t.Errorf("Cycle(355) = %v", Cycle(DefaultCycleDays))
	}
	start := MustParse("2023-01-01")
	if got := start.Add(Cycle(1)); got != MustParse("2023-01-02") {
		t.Errorf("Add(one day) = %v", got)
	}
	if d := MustParse("2023-01-02").Sub(start); d != 24*time.Hour {
		t.Errorf("Sub = %v", d)
	}
}
