package dashboard

import (
	"time"

	"bookaroo-server/models"
)

// OccupancyWindowDays is the trailing window metrics are computed over.
const OccupancyWindowDays = 30

// Metrics is the host dashboard summary.
type Metrics struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	OccupancyRate   float64 `json:"occupancyRate"`
	PendingBookings int64   `json:"pendingBookings"`
	TotalBookings   int64   `json:"totalBookings"`
}

// Compute derives the dashboard numbers from the host's bookings. Occupancy
// counts the actual nights each stay overlaps the trailing 30-day window,
// not just stays in progress at this instant, so short past stays inside
// the window are represented.
func Compute(bookings []models.Booking, propertyCount int, now time.Time) Metrics {
	m := Metrics{TotalBookings: int64(len(bookings))}

	windowEnd := midnight(now)
	windowStart := windowEnd.AddDate(0, 0, -OccupancyWindowDays)

	var occupiedNights int
	for i := range bookings {
		b := &bookings[i]
		if b.Status == models.BookingPending {
			m.PendingBookings++
		}
		if b.Status == models.BookingCancelled || b.Status == models.BookingExpired {
			continue
		}
		m.TotalRevenue += b.TotalPrice
		occupiedNights += overlapNights(b.CheckIn, b.CheckOut, windowStart, windowEnd)
	}

	if propertyCount > 0 {
		m.OccupancyRate = float64(occupiedNights) / float64(propertyCount*OccupancyWindowDays) * 100
	}
	return m
}

// overlapNights counts whole nights of [checkIn, checkOut) that fall inside
// [windowStart, windowEnd).
func overlapNights(checkIn, checkOut, windowStart, windowEnd time.Time) int {
	start := midnight(checkIn)
	end := midnight(checkOut)
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}
	if !start.Before(end) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
