package trade

import (
	"errors"
	"fmt"
	"time"
)

// FilterByCloseDate keeps trades whose close calendar day falls inside
// [from, to]. A zero bound is open.
func FilterByCloseDate(trades []Trade, from, to time.Time) []Trade {
	if from.IsZero() && to.IsZero() {
		return trades
	}

	from = day(from)
	to = day(to)

	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		d := day(t.CloseTime)
		if !from.IsZero() && d.Before(from) {
			continue
		}
		if !to.IsZero() && d.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateLayout is the day-first format accepted on the command line.
const DateLayout = "02-01-2006"

// DateRange is an inclusive close-date window. Desc is a short human
// description for reports, empty when no filter applies.
type DateRange struct {
	From time.Time
	To   time.Time
	Desc string
}

func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Apply filters trades to the window.
func (r DateRange) Apply(trades []Trade) []Trade {
	return FilterByCloseDate(trades, r.From, r.To)
}

// RangeFlags are the mutually exclusive ways of choosing a window: an
// explicit From/To pair (either side optional), the last N days including
// today, or the current calendar month.
type RangeFlags struct {
	From      string
	To        string
	Last      int
	HasLast   bool
	ThisMonth bool
}

// ParseDateRange resolves flags against today.
func ParseDateRange(f RangeFlags, today time.Time) (DateRange, error) {
	today = day(today)

	chosen := 0
	if f.From != "" || f.To != "" {
		chosen++
	}
	if f.HasLast {
		chosen++
	}
	if f.ThisMonth {
		chosen++
	}
	if chosen > 1 {
		return DateRange{}, errors.New("cannot combine --from/--to with --last or --this-month, use one filter type")
	}

	switch {
	case f.From != "" || f.To != "":
		var r DateRange
		var err error
		if f.From != "" {
			if r.From, err = parseDay(f.From); err != nil {
				return DateRange{}, err
			}
		}
		if f.To != "" {
			if r.To, err = parseDay(f.To); err != nil {
				return DateRange{}, err
			}
		}
		switch {
		case f.From != "" && f.To != "":
			if r.From.After(r.To) {
				return DateRange{}, errors.New("start date must be before or equal to end date")
			}
			r.Desc = f.From + " to " + f.To
		case f.From != "":
			r.Desc = "from " + f.From
		default:
			r.Desc = "until " + f.To
		}
		return r, nil

	case f.HasLast:
		if f.Last <= 0 {
			return DateRange{}, errors.New("--last value must be a positive number")
		}
		return DateRange{
			From: today.AddDate(0, 0, -(f.Last - 1)),
			To:   today,
			Desc: fmt.Sprintf("last %d days", f.Last),
		}, nil

	case f.ThisMonth:
		return DateRange{
			From: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC),
			To:   today,
			Desc: "this month",
		}, nil
	}
	return DateRange{}, nil
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s, use DD-MM-YYYY (e.g. 25-01-2026)", s)
	}
	return t, nil
}
