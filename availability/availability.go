package availability

import (
	"time"

	"bookaroo-server/models"
)

// UnavailableSet holds the calendar days a widget may not offer, keyed by
// the day's "2006-01-02" form so timestamps with differing clock times
// still match.
type UnavailableSet map[string]struct{}

// FromDays builds the set from persisted calendar rows. Booked, blocked and
// pending days are all unavailable: a night awaiting host confirmation must
// not be offered to a second guest.
func FromDays(days []models.AvailabilityDay) UnavailableSet {
	set := UnavailableSet{}
	for i := range days {
		if days[i].Unavailable() {
			set[DayKey(days[i].Date)] = struct{}{}
		}
	}
	return set
}

// Add marks a single date unavailable.
func (s UnavailableSet) Add(date time.Time) {
	s[DayKey(date)] = struct{}{}
}

// Contains reports whether the calendar day of date is in the set.
func (s UnavailableSet) Contains(date time.Time) bool {
	_, ok := s[DayKey(date)]
	return ok
}

// IsDateBlocked reports whether a date is selectable in the widget calendar:
// any day strictly before today's local midnight is blocked regardless of
// the set, then membership in the unavailable set decides.
func IsDateBlocked(date time.Time, unavailable UnavailableSet, today time.Time) bool {
	if Midnight(date).Before(Midnight(today)) {
		return true
	}
	return unavailable.Contains(date)
}

// RangeFree reports whether every night in [checkIn, checkOut) is
// selectable. The check-out day itself is excluded: guests leave that
// morning and the night remains sellable.
func RangeFree(checkIn, checkOut time.Time, unavailable UnavailableSet, today time.Time) bool {
	for d := Midnight(checkIn); d.Before(Midnight(checkOut)); d = d.AddDate(0, 0, 1) {
		if IsDateBlocked(d, unavailable, today) {
			return false
		}
	}
	return true
}

// Nights expands [checkIn, checkOut) into its individual calendar nights.
func Nights(checkIn, checkOut time.Time) []time.Time {
	var nights []time.Time
	for d := Midnight(checkIn); d.Before(Midnight(checkOut)); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

// Midnight truncates a timestamp to its local calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey renders the calendar-day identity used by UnavailableSet and the
// pricing override map.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
