package entities

import (
	"strconv"
	"time"

	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

// DateLayout is the wire format for check-in/check-out dates.
const DateLayout = "2006-01-02"

// BookingsIndex is a listing's reservation calendar: year -> month (zero
// based) -> day -> true for days that are already booked. Keys are decimal
// strings so the structure round-trips unchanged through both BSON and the
// JSON form exposed on the API. A missing key means the day is free; a day
// that has been marked is never unmarked.
type BookingsIndex map[string]map[string]map[string]bool

// ParseDate parses an ISO calendar date and pins it to UTC midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date, expected YYYY-MM-DD")
	}
	return t.UTC(), nil
}

// UTCDate truncates t to its UTC calendar day.
func UTCDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InclusiveNights returns the number of billable nights for an inclusive
// date range, i.e. whole days between the two dates plus one.
func InclusiveNights(checkIn, checkOut time.Time) int64 {
	days := int64(UTCDate(checkOut).Sub(UTCDate(checkIn)) / (24 * time.Hour))
	return days + 1
}

func indexKeys(day time.Time) (year, month, dom string) {
	year = strconv.Itoa(day.Year())
	month = strconv.Itoa(int(day.Month()) - 1)
	dom = strconv.Itoa(day.Day())
	return
}

// Booked reports whether the given calendar day is already reserved.
func (idx BookingsIndex) Booked(day time.Time) bool {
	y, m, d := indexKeys(UTCDate(day))
	return idx[y][m][d]
}

// Copy returns a deep copy sharing no storage with the receiver.
func (idx BookingsIndex) Copy() BookingsIndex {
	out := make(BookingsIndex, len(idx))
	for y, months := range idx {
		out[y] = make(map[string]map[string]bool, len(months))
		for m, days := range months {
			out[y][m] = make(map[string]bool, len(days))
			for d, booked := range days {
				out[y][m][d] = booked
			}
		}
	}
	return out
}

func (idx BookingsIndex) mark(day time.Time) {
	y, m, d := indexKeys(day)
	if idx[y] == nil {
		idx[y] = make(map[string]map[string]bool)
	}
	if idx[y][m] == nil {
		idx[y][m] = make(map[string]bool)
	}
	idx[y][m][d] = true
}

// ResolveIndex marks every day from checkIn through checkOut (inclusive) in
// a copy of existing and returns it. If any day in the range is already
// booked the whole operation fails with a date conflict and the caller's
// index is left untouched. Day arithmetic uses whole UTC calendar days, so
// daylight-saving transitions cannot skip or repeat a day. Callers must
// pre-validate checkOut >= checkIn.
func ResolveIndex(existing BookingsIndex, checkIn, checkOut time.Time) (BookingsIndex, error) {
	updated := existing.Copy()

	first := UTCDate(checkIn)
	last := UTCDate(checkOut)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if updated.Booked(day) {
			return nil, apperrors.NewDateConflictError(
				"selected dates overlap dates that have already been booked")
		}
		updated.mark(day)
	}

	return updated, nil
}
