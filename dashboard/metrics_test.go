package dashboard

import (
	"math"
	"testing"
	"time"

	"bookaroo-server/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeRevenueAndPending(t *testing.T) {
	now := day(2024, 7, 1)
	bookings := []models.Booking{
		{TotalPrice: 500, Status: models.BookingConfirmed, CheckIn: day(2024, 6, 10), CheckOut: day(2024, 6, 12)},
		{TotalPrice: 300, Status: models.BookingPending, CheckIn: day(2024, 7, 10), CheckOut: day(2024, 7, 12)},
		{TotalPrice: 900, Status: models.BookingCancelled, CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 5)},
		{TotalPrice: 250, Status: models.BookingCompleted, CheckIn: day(2024, 5, 1), CheckOut: day(2024, 5, 3)},
	}

	m := Compute(bookings, 2, now)

	// Cancelled bookings never count toward revenue.
	if !almostEqual(m.TotalRevenue, 500+300+250) {
		t.Fatalf("revenue = %v, want 1050", m.TotalRevenue)
	}
	if m.PendingBookings != 1 {
		t.Fatalf("pending = %d, want 1", m.PendingBookings)
	}
	if m.TotalBookings != 4 {
		t.Fatalf("total = %d, want 4", m.TotalBookings)
	}
}

func TestComputeOccupancyIntervalOverlap(t *testing.T) {
	now := day(2024, 7, 1) // window [6/1, 7/1)
	bookings := []models.Booking{
		// Entirely inside the window: 3 nights.
		{Status: models.BookingConfirmed, CheckIn: day(2024, 6, 10), CheckOut: day(2024, 6, 13)},
		// Straddles the window start: only the 6/1 and 6/2 nights count.
		{Status: models.BookingCompleted, CheckIn: day(2024, 5, 29), CheckOut: day(2024, 6, 3)},
		// Entirely before the window: 0 nights, even though it would have
		// been missed by instant sampling too.
		{Status: models.BookingCompleted, CheckIn: day(2024, 4, 1), CheckOut: day(2024, 4, 5)},
		// In the future, past the window end: 0 nights.
		{Status: models.BookingConfirmed, CheckIn: day(2024, 7, 10), CheckOut: day(2024, 7, 12)},
		// Cancelled stays occupy nothing.
		{Status: models.BookingCancelled, CheckIn: day(2024, 6, 20), CheckOut: day(2024, 6, 25)},
	}

	m := Compute(bookings, 1, now)

	// 5 occupied nights of 30 possible.
	want := float64(5) / 30 * 100
	if !almostEqual(m.OccupancyRate, want) {
		t.Fatalf("occupancy = %v, want %v", m.OccupancyRate, want)
	}
}

func TestComputeOccupancyShortPastStayInsideWindow(t *testing.T) {
	// The point of interval accounting: a stay that ended mid-window still
	// contributes its nights. Instant sampling at `now` would report 0.
	now := day(2024, 7, 1)
	bookings := []models.Booking{
		{Status: models.BookingCompleted, CheckIn: day(2024, 6, 5), CheckOut: day(2024, 6, 7)},
	}

	m := Compute(bookings, 1, now)
	want := float64(2) / 30 * 100
	if !almostEqual(m.OccupancyRate, want) {
		t.Fatalf("occupancy = %v, want %v", m.OccupancyRate, want)
	}
}

func TestComputeNoProperties(t *testing.T) {
	m := Compute(nil, 0, day(2024, 7, 1))
	if m.OccupancyRate != 0 || m.TotalRevenue != 0 || m.PendingBookings != 0 {
		t.Fatalf("metrics = %+v, want zeros", m)
	}
}
