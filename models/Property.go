package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultCleaningFee is applied when a host creates a property without
// setting an explicit cleaning fee.
const DefaultCleaningFee = 75

type Property struct {
	gorm.Model
	HostID      uint    `json:"hostID" gorm:"not null;index"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Type        string  `json:"type" gorm:"type:varchar(20)"` // room, apartment, house, villa
	BasePrice   float64 `json:"basePrice" gorm:"not null"`    // per night, > 0
	MaxGuests   int     `json:"maxGuests" gorm:"default:2"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   float32 `json:"bathrooms"`
	CleaningFee float64 `json:"cleaningFee"`
	Currency    string  `json:"currency" gorm:"default:'USD'"`
	IsActive    *bool   `json:"isActive" gorm:"default:true"`

	// Amenities is a JSON array of strings, SeasonalRates a JSON object
	// mapping "MM-DD" keys to nightly price multipliers.
	Amenities     datatypes.JSON `json:"amenities" gorm:"type:jsonb"`
	SeasonalRates datatypes.JSON `json:"seasonalRates" gorm:"type:jsonb"`

	// WidgetKey is the public token embedded in the booking widget snippet.
	WidgetKey string `json:"widgetKey" gorm:"type:varchar(64);uniqueIndex"`

	Discounts []StayDiscount `json:"discounts" gorm:"foreignKey:PropertyID"`
	Bookings  []Booking      `json:"bookings,omitempty" gorm:"foreignKey:PropertyID"`
	Host      *User          `json:"host,omitempty" gorm:"foreignKey:HostID;references:ID"`
}

// Custom JSON marshaling so the jsonb columns come out as real arrays/maps
// instead of raw bytes.
func (p *Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		Amenities     []string           `json:"amenities"`
		SeasonalRates map[string]float64 `json:"seasonalRates"`
		Host          *User              `json:"host,omitempty"`
		*Alias
	}{
		Amenities:     []string{},
		SeasonalRates: map[string]float64{},
		Alias:         (*Alias)(p),
	}

	if p.Amenities != nil {
		var amenities []string
		if err := json.Unmarshal(p.Amenities, &amenities); err == nil {
			aux.Amenities = amenities
		}
	}

	if p.SeasonalRates != nil {
		var rates map[string]float64
		if err := json.Unmarshal(p.SeasonalRates, &rates); err == nil {
			aux.SeasonalRates = rates
		}
	}

	// Avoid the circular property list when the host relation is loaded.
	if p.Host != nil && p.Host.ID > 0 {
		hostCopy := *p.Host
		hostCopy.Properties = nil
		aux.Host = &hostCopy
	}

	return json.Marshal(aux)
}

// SeasonalRateMap decodes the jsonb column into the lookup consumed by the
// pricing package. A nil or malformed column yields an empty map.
func (p *Property) SeasonalRateMap() map[string]float64 {
	rates := map[string]float64{}
	if p.SeasonalRates != nil {
		json.Unmarshal(p.SeasonalRates, &rates)
	}
	return rates
}
