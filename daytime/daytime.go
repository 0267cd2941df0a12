// Package daytime handles the nanosecond timestamps used as box, log and
// step keys throughout the vault. A key is the moment the funds it
// represents were first tracked, and it must survive transfers unchanged,
// so the type is a plain integer the whole engine can sort and compare.
package daytime

import (
	"fmt"
	"strconv"
	"time"
)

// Time is a point in time with nanosecond granularity, counted since the
// Unix epoch. The zero value means "never".
type Time int64

// Cycle returns the duration of a lunar year of the given number of days.
// 355 days is the customary approximation used for the Hawl threshold.
func Cycle(days int) time.Duration { return time.Duration(days) * 24 * time.Hour }

// DefaultCycleDays is the number of days in the default Hawl cycle.
const DefaultCycleDays = 355

// Now returns the current instant.
func Now() Time { return Time(time.Now().UnixNano()) }

// N converts a time.Time into a Time key.
func N(t time.Time) Time { return Time(t.UnixNano()) }

// Std returns the instant as a time.Time in UTC.
func (t Time) Std() time.Time { return time.Unix(0, int64(t)).UTC() }

// IsZero reports whether the instant is unset.
func (t Time) IsZero() bool { return t == 0 }

// Before reports whether t is strictly before x.
func (t Time) Before(x Time) bool { return t < x }

// After reports whether t is strictly after x.
func (t Time) After(x Time) bool { return t > x }

// Add returns the instant shifted by d.
func (t Time) Add(d time.Duration) Time { return t + Time(d) }

// Sub returns the elapsed duration from x to t.
func (t Time) Sub(x Time) time.Duration { return time.Duration(t - x) }

// Day truncates the instant to midnight UTC of the same calendar day.
func (t Time) Day() Time {
	y, m, d := t.Std().Date()
	return N(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Weekday returns the day of the week of the instant.
func (t Time) Weekday() time.Weekday { return t.Std().Weekday() }

// String formats the instant in RFC 3339 with nanoseconds.
func (t Time) String() string {
	if t.IsZero() {
		return "never"
	}
	return t.Std().Format(time.RFC3339Nano)
}

// Key returns the canonical string form used for map keys in the persisted
// vault document.
func (t Time) Key() string { return strconv.FormatInt(int64(t), 10) }

// ParseKey parses the canonical vault key form.
func ParseKey(s string) (Time, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time key %q: %w", s, err)
	}
	return Time(n), nil
}

// readFormats are the accepted textual forms, most precise first. The last
// entries accept the date-only rows found in bulk imports.
var readFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse parses an instant from a string. It is lenient and accepts both
// full RFC 3339 stamps and bare dates like "1988-06-30".
func Parse(s string) (Time, error) {
	for _, f := range readFormats {
		if t, err := time.Parse(f, s); err == nil {
			return N(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q, want one of formats %v", s, readFormats)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return t
}
