package task

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Duration is the canonical in-memory representation of a task duration:
// whole days plus a sub-day remainder in seconds (0-86399). The textual
// "<days> days, H:MM:SS" form exists only at the response and persistence
// boundaries.
type Duration struct {
	Days    int
	Seconds int

	raw     string
	invalid bool
}

// NewDuration builds a normalized Duration from a total number of seconds.
// The remainder is always kept in [0, 86400), matching floor division.
func NewDuration(totalSeconds int64) Duration {
	days := totalSeconds / secondsPerDay
	secs := totalSeconds % secondsPerDay
	if secs < 0 {
		days--
		secs += secondsPerDay
	}
	return Duration{Days: int(days), Seconds: int(secs)}
}

// FromStd converts a time.Duration, truncated to whole seconds.
func FromStd(d time.Duration) Duration {
	return NewDuration(int64(d / time.Second))
}

// TotalSeconds returns the full span in seconds.
func (d Duration) TotalSeconds() int64 {
	return int64(d.Days)*secondsPerDay + int64(d.Seconds)
}

// String renders the duration in its display form: days, then unpadded
// hours, then zero-padded minutes and seconds.
func (d Duration) String() string {
	n := NewDuration(d.TotalSeconds())
	return fmt.Sprintf("%d days, %d:%02d:%02d",
		n.Days, n.Seconds/3600, (n.Seconds/60)%60, n.Seconds%60)
}

// ParseDuration parses the "<days> days, H:MM:SS" text form. Any other
// shape is an error.
func ParseDuration(text string) (Duration, error) {
	daysPart, clock, ok := strings.Cut(text, " days, ")
	if !ok {
		return Duration{}, fmt.Errorf("invalid duration format: %q", text)
	}

	days, err := strconv.Atoi(strings.TrimSpace(daysPart))
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration format: %q", text)
	}

	fields := strings.Split(clock, ":")
	if len(fields) != 3 {
		return Duration{}, fmt.Errorf("invalid duration format: %q", text)
	}

	var hms [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Duration{}, fmt.Errorf("invalid duration format: %q", text)
		}
		hms[i] = v
	}

	total := int64(days)*secondsPerDay +
		int64(hms[0])*3600 + int64(hms[1])*60 + int64(hms[2])
	return NewDuration(total), nil
}

// UnmarshalJSON accepts either a number of seconds (the native form) or the
// "<days> days, H:MM:SS" text form. Format problems are deferred to
// Validate so a single validation pass can report them alongside every
// other violation.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		parsed, err := ParseDuration(text)
		if err != nil {
			*d = Duration{raw: text, invalid: true}
			return nil
		}
		*d = parsed
		return nil
	}

	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		*d = Duration{raw: string(data), invalid: true}
		return nil
	}
	*d = NewDuration(int64(secs))
	return nil
}

// MarshalJSON renders the display form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
