package models

import (
	"time"

	"gorm.io/gorm"
)

// Per-date availability status values.
const (
	DayAvailable = "available"
	DayBooked    = "booked"
	DayBlocked   = "blocked"
	DayPending   = "pending"
)

// AvailabilityDay is the per-night calendar record for a property. Rows are
// created lazily: when a booking reserves nights, when a host blocks a range,
// or when a host sets a per-night price override. The composite unique index
// on (property_id, date) is what makes two concurrent bookings of the same
// night impossible: the second writer's insert fails and its transaction is
// rolled back.
type AvailabilityDay struct {
	gorm.Model
	PropertyID uint      `json:"propertyID" gorm:"not null;uniqueIndex:idx_property_date"`
	Date       time.Time `json:"date" gorm:"not null;uniqueIndex:idx_property_date"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:'available';index"`
	Price      *float64  `json:"price"`               // per-night override, nil = property base price
	BookingID  *uint     `json:"bookingID" gorm:"index"` // set iff status is booked or pending
	Note       string    `json:"note"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

// Unavailable reports whether the day cannot be booked. Pending holds count
// as unavailable so a second guest cannot grab nights awaiting confirmation.
func (d *AvailabilityDay) Unavailable() bool {
	return d.Status == DayBooked || d.Status == DayBlocked || d.Status == DayPending
}
