package models

import "gorm.io/gorm"

// StayDiscount is an extended-stay discount rule. Only the single rule with
// the largest MinimumDays not exceeding the stay length applies to a quote;
// rules never stack.
type StayDiscount struct {
	gorm.Model
	PropertyID  uint    `json:"propertyID" gorm:"not null;index"`
	MinimumDays int     `json:"minimumDays" gorm:"not null"` // > 0
	Percentage  float64 `json:"percentage" gorm:"not null"`  // 0 < p <= 100
	Active      bool    `json:"active" gorm:"default:true"`
}
