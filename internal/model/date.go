package model

import (
	"fmt"
	"time"
)

// Date is a calendar date without time-of-day. It compares with == so
// records carrying it stay directly comparable.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf projects a time.Time onto its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns the date at UTC midnight.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
