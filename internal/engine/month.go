package engine

import (
	"fmt"
	"time"
)

// Month identifies one calendar month. Projections and historical windows
// are month-addressable; a month is (year, month), never a 30-day window.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Key returns the canonical "YYYY-MM" form used to key projection maps.
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// AddMonths returns the month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether t falls inside the calendar month m.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Start returns midnight on the first day of the month in t's location.
func (m Month) Start(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// End returns the last day of the month in t's location.
func (m Month) End(loc *time.Location) time.Time {
	return m.Start(loc).AddDate(0, 1, -1)
}

// LookbackWindow returns the n whole calendar months immediately before the
// month containing asOf, oldest first. The partial current month is never
// part of the historical window.
func LookbackWindow(asOf time.Time, n int) []Month {
	if n < 1 {
		return nil
	}
	cur := MonthOf(asOf)
	window := make([]Month, n)
	for i := 0; i < n; i++ {
		window[i] = cur.AddMonths(i - n)
	}
	return window
}
