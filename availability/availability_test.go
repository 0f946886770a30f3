package availability

import (
	"testing"
	"time"

	"bookaroo-server/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestIsDateBlockedPastDates(t *testing.T) {
	today := day(2024, 6, 15)

	// Any date strictly before today's midnight is blocked, even with an
	// empty unavailable set.
	if !IsDateBlocked(day(2024, 6, 14), UnavailableSet{}, today) {
		t.Error("yesterday should be blocked")
	}
	if !IsDateBlocked(day(2020, 1, 1), UnavailableSet{}, today) {
		t.Error("distant past should be blocked")
	}
	if IsDateBlocked(day(2024, 6, 15), UnavailableSet{}, today) {
		t.Error("today should not be blocked")
	}
	if IsDateBlocked(day(2024, 6, 16), UnavailableSet{}, today) {
		t.Error("tomorrow should not be blocked")
	}

	// Time of day on "today" must not matter.
	lateToday := time.Date(2024, 6, 15, 23, 50, 0, 0, time.Local)
	if IsDateBlocked(day(2024, 6, 15), UnavailableSet{}, lateToday) {
		t.Error("today at 23:50 should still allow today's date")
	}
}

func TestIsDateBlockedMatchesByCalendarDay(t *testing.T) {
	today := day(2024, 6, 1)
	set := UnavailableSet{}
	set.Add(time.Date(2024, 6, 20, 15, 0, 0, 0, time.Local))

	// A different clock time on the same day still matches.
	if !IsDateBlocked(time.Date(2024, 6, 20, 8, 30, 0, 0, time.Local), set, today) {
		t.Error("same calendar day with different time should be blocked")
	}
	if IsDateBlocked(day(2024, 6, 21), set, today) {
		t.Error("adjacent day should not be blocked")
	}
}

func TestFromDaysStatusFiltering(t *testing.T) {
	days := []models.AvailabilityDay{
		{PropertyID: 1, Date: day(2024, 7, 1), Status: models.DayBooked},
		{PropertyID: 1, Date: day(2024, 7, 2), Status: models.DayBlocked},
		{PropertyID: 1, Date: day(2024, 7, 3), Status: models.DayPending},
		{PropertyID: 1, Date: day(2024, 7, 4), Status: models.DayAvailable},
	}
	set := FromDays(days)

	if !set.Contains(day(2024, 7, 1)) {
		t.Error("booked day should be unavailable")
	}
	if !set.Contains(day(2024, 7, 2)) {
		t.Error("blocked day should be unavailable")
	}
	// Pending holds keep the night off the market until the host decides.
	if !set.Contains(day(2024, 7, 3)) {
		t.Error("pending day should be unavailable")
	}
	if set.Contains(day(2024, 7, 4)) {
		t.Error("available day should not be in the set")
	}
}

func TestRangeFreeExcludesCheckoutDay(t *testing.T) {
	today := day(2024, 6, 1)
	set := UnavailableSet{}
	set.Add(day(2024, 7, 5))

	// Check-out on the unavailable day is fine: [7/2, 7/5) never touches it.
	if !RangeFree(day(2024, 7, 2), day(2024, 7, 5), set, today) {
		t.Error("range ending on an unavailable check-out day should be free")
	}
	// Staying through that night is not.
	if RangeFree(day(2024, 7, 2), day(2024, 7, 6), set, today) {
		t.Error("range covering an unavailable night should not be free")
	}
}

func TestNightsExpansion(t *testing.T) {
	nights := Nights(day(2024, 7, 2), day(2024, 7, 5))
	if len(nights) != 3 {
		t.Fatalf("got %d nights, want 3", len(nights))
	}
	if !nights[0].Equal(day(2024, 7, 2)) || !nights[2].Equal(day(2024, 7, 4)) {
		t.Fatalf("nights = %v", nights)
	}

	if got := Nights(day(2024, 7, 2), day(2024, 7, 2)); len(got) != 0 {
		t.Fatalf("empty range produced %d nights", len(got))
	}
}

func TestRoundTripBookedNight(t *testing.T) {
	// A night recorded as booked must come back unavailable when the range
	// containing it is queried.
	booked := day(2024, 8, 10)
	rows := []models.AvailabilityDay{
		{PropertyID: 3, Date: booked, Status: models.DayBooked},
	}

	set := FromDays(rows)
	if !IsDateBlocked(booked, set, day(2024, 6, 1)) {
		t.Error("booked night did not round-trip through the unavailable set")
	}
}
