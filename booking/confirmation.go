package booking

import (
	"errors"
	"time"
)

var (
	ErrInvalidTransition = errors.New("action not valid in current session state")
	ErrMissingGuestInfo  = errors.New("customer name, email and phone are required")
	ErrDatesUnavailable  = errors.New("selected dates are no longer available")
)

// Confirmation is the summary returned to the widget after a successful
// submission. Property stays and service appointments carry different
// fields, so each is its own variant instead of one struct with a pile of
// optional members.
type Confirmation interface {
	Kind() string
	Reference() uint
}

// PropertyConfirmation summarizes a stay booking.
type PropertyConfirmation struct {
	BookingID    uint      `json:"bookingID"`
	PropertyName string    `json:"propertyName"`
	CheckIn      time.Time `json:"checkIn"`
	CheckOut     time.Time `json:"checkOut"`
	NumGuests    int       `json:"numGuests"`
	TotalPrice   float64   `json:"totalPrice"`
	Currency     string    `json:"currency"`
}

func (c PropertyConfirmation) Kind() string    { return "property" }
func (c PropertyConfirmation) Reference() uint { return c.BookingID }

// ServiceConfirmation summarizes a service appointment booked through the
// same widget.
type ServiceConfirmation struct {
	BookingID   uint      `json:"bookingID"`
	ServiceName string    `json:"serviceName"`
	StartsAt    time.Time `json:"startsAt"`
	Duration    int       `json:"durationMinutes"`
	TotalPrice  float64   `json:"totalPrice"`
	Currency    string    `json:"currency"`
}

func (c ServiceConfirmation) Kind() string    { return "service" }
func (c ServiceConfirmation) Reference() uint { return c.BookingID }
