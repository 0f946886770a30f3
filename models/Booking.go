package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking status values. Bookings are never physically deleted; their status
// drives the lifecycle.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
	BookingExpired   = "expired"
)

// Booking is a stay reservation for the half-open range [CheckIn, CheckOut).
// The price breakdown computed at submission time is persisted alongside so
// later rate changes never rewrite history.
type Booking struct {
	gorm.Model
	PropertyID uint      `json:"propertyID" gorm:"not null;index"`
	GuestID    uint      `json:"guestID" gorm:"index"`
	CheckIn    time.Time `json:"checkIn" gorm:"not null"`
	CheckOut   time.Time `json:"checkOut" gorm:"not null"`
	NumGuests  int       `json:"numGuests"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	BaseTotal          float64 `json:"baseTotal"`
	SeasonalAdjustment float64 `json:"seasonalAdjustment"`
	Discount           float64 `json:"discount"`
	CleaningFee        float64 `json:"cleaningFee"`
	ServiceFee         float64 `json:"serviceFee"`
	TotalPrice         float64 `json:"totalPrice"`

	Status    string    `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Note      string    `json:"note"`
	ExpiresAt time.Time `json:"expiresAt"` // 24h window for pending requests

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Guest    *User     `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}

// Nights returns the stay length in whole calendar nights, ignoring time of
// day and UTC offset.
func (b *Booking) Nights() int {
	in := time.Date(b.CheckIn.Year(), b.CheckIn.Month(), b.CheckIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(b.CheckOut.Year(), b.CheckOut.Month(), b.CheckOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}
