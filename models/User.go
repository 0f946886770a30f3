package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Password  string `json:"-"`
	Phone     string `json:"phone"`
	Role      string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, host, admin

	Properties []Property `json:"properties,omitempty" gorm:"foreignKey:HostID;references:ID"`
	Bookings   []Booking  `json:"bookings,omitempty" gorm:"foreignKey:GuestID"`
}
