package core

import (
	"errors"
	"time"
)

type (
	// Date is a calendar timestamp used for month/year bucketing.
	Date struct {
		time.Time
	}

	// Window is a half-open time interval [Start, End).
	Window struct {
		Start time.Time
		End   time.Time
	}
)

var ErrInvalidDate = errors.New("date cannot be zero")

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf wraps an instant as a Date.
func DateOf(t time.Time) Date {
	return Date{Time: t}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// MonthWindow returns the [first of month, first of next month) window in UTC.
func MonthWindow(year, month int) Window {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// CurrentMonthWindow returns the window for now's calendar month.
func CurrentMonthWindow() Window {
	now := time.Now().UTC()
	return MonthWindow(now.Year(), int(now.Month()))
}
