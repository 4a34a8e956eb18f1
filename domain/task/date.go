package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// dueDateLayouts are tried in order. The slash and dash layouts are
// day-first: in ambiguous numeric dates the first component is the day of
// month, so "02/03/2025" is the 2nd of March. A value above 12 in the month
// position fails to parse.
var dueDateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2006-01-02",
}

// DueDate is a calendar date parsed with a day-first convention.
type DueDate struct {
	time.Time

	raw     string
	invalid bool
}

// NewDueDate wraps a time as a due date. Only the calendar day matters.
func NewDueDate(t time.Time) DueDate {
	return DueDate{Time: t}
}

// ParseDueDate parses date text using the day-first layouts.
func ParseDueDate(text string) (DueDate, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return DueDate{Time: t}, nil
		}
	}
	return DueDate{}, fmt.Errorf("invalid date format: %q", text)
}

// UnmarshalJSON parses the textual form. Unparseable text is deferred to
// Validate, which reports it as an InvalidFormat violation.
func (d *DueDate) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		*d = DueDate{raw: string(data), invalid: true}
		return nil
	}
	parsed, err := ParseDueDate(text)
	if err != nil {
		*d = DueDate{raw: text, invalid: true}
		return nil
	}
	*d = parsed
	return nil
}

// MarshalJSON renders the date as yyyy-mm-dd.
func (d DueDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

// afterDay reports whether the due date falls strictly after the calendar
// day of ref. Times of day are ignored on both sides.
func (d DueDate) afterDay(ref time.Time) bool {
	ry, rm, rd := ref.Date()
	dy, dm, dd := d.Date()
	refDay := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return dueDay.After(refDay)
}
