package booking

import (
	"testing"
	"time"

	"bookaroo-server/pricing"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// quoteStub prices any positive range at 100/night + 75 cleaning, the way
// the real quote function behaves with nothing configured.
func quoteStub(propertyID uint, checkIn, checkOut time.Time, guests int) *pricing.Quote {
	return pricing.ComputeQuote(pricing.QuoteInput{
		BasePrice:   100,
		CleaningFee: 75,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      guests,
	})
}

func TestSessionHappyPath(t *testing.T) {
	s := NewSession(quoteStub)
	if s.State() != StateSelectingProperty {
		t.Fatalf("state = %s", s.State())
	}

	s.SelectProperty(7)
	if s.State() != StateSelectingDates {
		t.Fatalf("state after property = %s", s.State())
	}

	// Reviewing is entered automatically once the range prices.
	s.SelectDates(day(2024, 7, 1), day(2024, 7, 4))
	if s.State() != StateReviewingPricing {
		t.Fatalf("state after dates = %s", s.State())
	}
	if s.Quote() == nil || s.Quote().Nights != 3 {
		t.Fatalf("quote = %+v", s.Quote())
	}

	if !s.BeginGuestInfo() {
		t.Fatal("BeginGuestInfo refused with a valid quote")
	}
	if err := s.SubmitGuestInfo(GuestInfo{Name: "Ada Guest", Email: "ada@example.com", Phone: "+15550100"}); err != nil {
		t.Fatalf("SubmitGuestInfo: %v", err)
	}
	s.Confirm()
	if s.State() != StateConfirmed {
		t.Fatalf("state = %s", s.State())
	}
}

func TestSessionPartialDateSelection(t *testing.T) {
	s := NewSession(quoteStub)
	s.SelectProperty(7)

	// Only a check-in: valid partial sub-state, no quote yet.
	s.SelectDates(day(2024, 7, 1), time.Time{})
	if s.State() != StateSelectingDates {
		t.Fatalf("state = %s", s.State())
	}
	if s.Quote() != nil {
		t.Fatalf("quote should be nil for a partial selection, got %+v", s.Quote())
	}

	// Clearing both returns to the empty selection.
	s.SelectDates(time.Time{}, time.Time{})
	checkIn, checkOut := s.Dates()
	if !checkIn.IsZero() || !checkOut.IsZero() {
		t.Fatal("dates should be cleared")
	}
}

func TestSessionRecomputesOnInputChange(t *testing.T) {
	var calls int
	counting := func(propertyID uint, in, out time.Time, guests int) *pricing.Quote {
		calls++
		return quoteStub(propertyID, in, out, guests)
	}

	s := NewSession(counting)
	s.SelectProperty(1)
	s.SelectDates(day(2024, 7, 1), day(2024, 7, 3))
	s.SetGuests(4)

	if calls != 3 {
		t.Fatalf("quote recomputed %d times, want 3 (property, dates, guests)", calls)
	}

	// Changing dates away from a priceable range drops back to selection.
	s.SelectDates(day(2024, 7, 1), time.Time{})
	if s.State() != StateSelectingDates {
		t.Fatalf("state = %s", s.State())
	}

	// Switching property clears the previous date selection.
	s.SelectDates(day(2024, 7, 1), day(2024, 7, 3))
	s.SelectProperty(2)
	checkIn, _ := s.Dates()
	if !checkIn.IsZero() {
		t.Fatal("dates should reset when the property changes")
	}
}

func TestSubmitGuestInfoValidation(t *testing.T) {
	s := NewSession(quoteStub)
	s.SelectProperty(1)

	// Guest info is refused outside the form state.
	if err := s.SubmitGuestInfo(GuestInfo{Name: "A", Email: "a@b.c", Phone: "1234567"}); err != ErrInvalidTransition {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}

	s.SelectDates(day(2024, 7, 1), day(2024, 7, 4))
	if !s.BeginGuestInfo() {
		t.Fatal("BeginGuestInfo refused")
	}

	missing := []GuestInfo{
		{Email: "a@b.c", Phone: "1234567"},
		{Name: "A", Phone: "1234567"},
		{Name: "A", Email: "a@b.c"},
		{Name: "   ", Email: "a@b.c", Phone: "1234567"},
	}
	for i, info := range missing {
		if err := s.SubmitGuestInfo(info); err != ErrMissingGuestInfo {
			t.Errorf("case %d: err = %v, want ErrMissingGuestInfo", i, err)
		}
		// Failure keeps the session on the form for a retry.
		if s.State() != StateSubmittingGuestInfo {
			t.Errorf("case %d: state = %s", i, s.State())
		}
	}

	if err := s.SubmitGuestInfo(GuestInfo{Name: "A", Email: "a@b.c", Phone: "1234567"}); err != nil {
		t.Fatalf("valid info rejected: %v", err)
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession(quoteStub)
	s.SelectProperty(1)
	s.SelectDates(day(2024, 7, 1), day(2024, 7, 4))
	s.BeginGuestInfo()
	s.SubmitGuestInfo(GuestInfo{Name: "A", Email: "a@b.c", Phone: "1234567"})
	s.Confirm()

	s.Reset()
	if s.State() != StateSelectingProperty {
		t.Fatalf("state = %s", s.State())
	}
	if s.PropertyID() != 0 || s.Quote() != nil {
		t.Fatal("transient state survived reset")
	}

	// The session is reusable after reset.
	s.SelectProperty(2)
	s.SelectDates(day(2024, 8, 1), day(2024, 8, 3))
	if s.State() != StateReviewingPricing {
		t.Fatalf("state = %s", s.State())
	}
}

func TestConfirmationVariants(t *testing.T) {
	var c Confirmation = PropertyConfirmation{BookingID: 12, PropertyName: "Sea View", TotalPrice: 768}
	if c.Kind() != "property" || c.Reference() != 12 {
		t.Fatalf("property confirmation: kind=%s ref=%d", c.Kind(), c.Reference())
	}

	c = ServiceConfirmation{BookingID: 9, ServiceName: "Airport pickup", Duration: 45}
	if c.Kind() != "service" || c.Reference() != 9 {
		t.Fatalf("service confirmation: kind=%s ref=%d", c.Kind(), c.Reference())
	}
}
