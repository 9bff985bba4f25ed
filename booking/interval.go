package booking

import (
	"fmt"
	"time"
)

// Interval is a half-open date range [CheckIn, CheckOut). The checkout
// morning and the check-in afternoon of the same calendar day do not
// conflict, so a stay ending on day D and one starting on day D can
// coexist.
type Interval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewInterval builds an interval from two dates, normalized to UTC
// midnight. Fails with ErrInvalidInterval unless check-in is strictly
// before check-out.
func NewInterval(checkIn, checkOut time.Time) (Interval, error) {
	iv := Interval{CheckIn: toDay(checkIn), CheckOut: toDay(checkOut)}
	if !iv.CheckIn.Before(iv.CheckOut) {
		return Interval{}, fmt.Errorf("%w: check-in %s, check-out %s",
			ErrInvalidInterval, iv.CheckIn.Format("2006-01-02"), iv.CheckOut.Format("2006-01-02"))
	}
	return iv, nil
}

// Overlaps reports whether two half-open intervals share at least one night.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.CheckIn.Before(other.CheckOut) && iv.CheckOut.After(other.CheckIn)
}

// Contains reports whether day falls on an occupied night of the interval.
func (iv Interval) Contains(day time.Time) bool {
	d := toDay(day)
	return !d.Before(iv.CheckIn) && d.Before(iv.CheckOut)
}

// Nights returns the number of occupied nights.
func (iv Interval) Nights() int {
	return int(iv.CheckOut.Sub(iv.CheckIn).Hours() / 24)
}

func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
