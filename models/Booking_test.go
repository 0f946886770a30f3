package models

import (
	"testing"
	"time"
)

func TestBookingNightsMixedOffsets(t *testing.T) {
	east := time.FixedZone("UTC+5", 5*3600)
	west := time.FixedZone("UTC-5", -5*3600)

	b := Booking{
		CheckIn:  time.Date(2024, 6, 1, 0, 0, 0, 0, west),
		CheckOut: time.Date(2024, 6, 2, 0, 0, 0, 0, east),
	}
	if n := b.Nights(); n != 1 {
		t.Fatalf("nights = %d, want 1", n)
	}

	// Time of day never changes the count either.
	b.CheckOut = time.Date(2024, 6, 4, 3, 30, 0, 0, east)
	if n := b.Nights(); n != 3 {
		t.Fatalf("nights = %d, want 3", n)
	}
}
