package booking

import (
	"strings"
	"time"

	"bookaroo-server/pricing"
)

// Session states, in widget order. Any state may reset back to
// StateSelectingProperty.
const (
	StateSelectingProperty   = "selecting_property"
	StateSelectingDates      = "selecting_dates"
	StateReviewingPricing    = "reviewing_pricing"
	StateSubmittingGuestInfo = "submitting_guest_info"
	StateConfirmed           = "confirmed"
)

// QuoteFunc produces a quote for the session's current selection, or nil
// when the selection cannot be priced yet.
type QuoteFunc func(propertyID uint, checkIn, checkOut time.Time, guests int) *pricing.Quote

// GuestInfo is what the widget's final form collects.
type GuestInfo struct {
	Name  string `json:"customerName" validate:"required"`
	Email string `json:"customerEmail" validate:"required,email"`
	Phone string `json:"customerPhone" validate:"required"`
}

// Session is one customer's pass through the widget. It holds transient
// selection state only; persistence happens in the submit handler. The
// quote is recomputed explicitly whenever property, dates or guest count
// change, replacing the original's reactive effect scheduling.
type Session struct {
	state      string
	propertyID uint
	checkIn    time.Time
	checkOut   time.Time
	guests     int
	quote      *pricing.Quote
	guest      GuestInfo

	quoteFor QuoteFunc
}

func NewSession(quoteFor QuoteFunc) *Session {
	return &Session{state: StateSelectingProperty, guests: 1, quoteFor: quoteFor}
}

func (s *Session) State() string         { return s.state }
func (s *Session) Quote() *pricing.Quote { return s.quote }
func (s *Session) PropertyID() uint      { return s.propertyID }
func (s *Session) Guest() GuestInfo      { return s.guest }

// Dates returns the current selection; either may be zero while the guest
// is still picking.
func (s *Session) Dates() (checkIn, checkOut time.Time) {
	return s.checkIn, s.checkOut
}

// SelectProperty picks the property and moves into date selection. Choosing
// a different property clears any previous dates and quote.
func (s *Session) SelectProperty(propertyID uint) {
	if propertyID != s.propertyID {
		s.checkIn, s.checkOut = time.Time{}, time.Time{}
	}
	s.propertyID = propertyID
	s.state = StateSelectingDates
	s.recompute()
}

// SelectDates records the current calendar selection. A lone check-in is a
// valid partial selection; clearing both returns to the empty sub-state.
// The session advances to reviewing as soon as the range prices.
func (s *Session) SelectDates(checkIn, checkOut time.Time) {
	s.checkIn, s.checkOut = checkIn, checkOut
	if s.state == StateReviewingPricing || s.state == StateSubmittingGuestInfo {
		s.state = StateSelectingDates
	}
	s.recompute()
}

// SetGuests updates the party size and reprices.
func (s *Session) SetGuests(n int) {
	s.guests = n
	s.recompute()
}

// BeginGuestInfo moves to the guest form; only valid once a quote exists.
func (s *Session) BeginGuestInfo() bool {
	if s.state != StateReviewingPricing || s.quote == nil {
		return false
	}
	s.state = StateSubmittingGuestInfo
	return true
}

// SubmitGuestInfo validates the form. On failure the session stays in
// SubmittingGuestInfo so the widget can surface the error and retry.
func (s *Session) SubmitGuestInfo(info GuestInfo) error {
	if s.state != StateSubmittingGuestInfo {
		return ErrInvalidTransition
	}
	if strings.TrimSpace(info.Name) == "" ||
		strings.TrimSpace(info.Email) == "" ||
		strings.TrimSpace(info.Phone) == "" {
		return ErrMissingGuestInfo
	}
	s.guest = info
	return nil
}

// Confirm marks the session complete after the backend persisted the
// booking. Booked nights stay booked through any later Reset; only an
// explicit cancellation releases them.
func (s *Session) Confirm() {
	s.state = StateConfirmed
}

// Reset is the explicit "book another" action: all transient state clears
// and the session starts over at property selection.
func (s *Session) Reset() {
	*s = Session{state: StateSelectingProperty, guests: 1, quoteFor: s.quoteFor}
}

// recompute refreshes the quote from the current inputs and keeps the state
// in step: a priceable range advances to reviewing, losing the quote falls
// back to date selection.
func (s *Session) recompute() {
	if s.quoteFor == nil || s.propertyID == 0 {
		s.quote = nil
		return
	}
	s.quote = s.quoteFor(s.propertyID, s.checkIn, s.checkOut, s.guests)
	switch {
	case s.quote != nil && s.state == StateSelectingDates:
		s.state = StateReviewingPricing
	case s.quote == nil && s.state == StateReviewingPricing:
		s.state = StateSelectingDates
	}
}
