package pricing

import (
	"sort"
	"time"
)

// ServiceFeeRate is the platform cut applied to the discounted stay subtotal.
const ServiceFeeRate = 0.10

// DayKey is the layout for per-night price override lookups.
const DayKey = "2006-01-02"

// SeasonKey is the layout for seasonal multiplier lookups.
const SeasonKey = "01-02"

// DiscountRule is an extended-stay discount candidate. Of all rules whose
// MinimumDays does not exceed the stay length, only the one with the largest
// MinimumDays applies; ties keep the first-seen rule.
type DiscountRule struct {
	MinimumDays int
	Percentage  float64
}

// QuoteInput carries everything a quote needs. Per-night overrides and
// seasonal rates are supplied pre-fetched; this package never touches the
// database.
type QuoteInput struct {
	BasePrice     float64
	CleaningFee   float64
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int // accepted but price-neutral for now
	NightlyPrices map[string]float64 // DayKey -> override
	SeasonalRates map[string]float64 // SeasonKey -> multiplier, absent = 1
	Discounts     []DiscountRule
}

// Quote is the price breakdown for a stay.
type Quote struct {
	Nights             int     `json:"nights"`
	BaseTotal          float64 `json:"baseTotal"`
	SeasonalAdjustment float64 `json:"seasonalAdjustment"`
	Discount           float64 `json:"discount"`
	CleaningFee        float64 `json:"cleaningFee"`
	ServiceFee         float64 `json:"serviceFee"`
	Total              float64 `json:"total"`
}

// ComputeQuote prices a stay over the half-open range [CheckIn, CheckOut).
// It returns nil when either date is zero or the range is non-positive:
// that means "no pricing yet", not an error, and callers render nothing.
//
// The seasonal multiplier is looked up per night by "MM-DD"; nights without
// a configured multiplier price at the plain nightly rate.
func ComputeQuote(in QuoteInput) *Quote {
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return nil
	}
	nights := NightsBetween(in.CheckIn, in.CheckOut)
	if nights <= 0 {
		return nil
	}

	var baseTotal, seasonal float64
	for d := truncateDay(in.CheckIn); d.Before(truncateDay(in.CheckOut)); d = d.AddDate(0, 0, 1) {
		nightly := in.BasePrice
		if override, ok := in.NightlyPrices[d.Format(DayKey)]; ok {
			nightly = override
		}
		baseTotal += nightly

		if mult, ok := in.SeasonalRates[d.Format(SeasonKey)]; ok {
			seasonal += nightly * (mult - 1)
		}
	}

	discount := 0.0
	if rule := BestDiscount(in.Discounts, nights); rule != nil {
		discount = (baseTotal + seasonal) * (rule.Percentage / 100)
	}

	serviceFee := (baseTotal + seasonal - discount) * ServiceFeeRate
	total := baseTotal + seasonal - discount + in.CleaningFee + serviceFee

	return &Quote{
		Nights:             nights,
		BaseTotal:          baseTotal,
		SeasonalAdjustment: seasonal,
		Discount:           discount,
		CleaningFee:        in.CleaningFee,
		ServiceFee:         serviceFee,
		Total:              total,
	}
}

// BestDiscount selects the single applicable rule: the largest MinimumDays
// not exceeding nights. A stable descending sort keeps first-seen order
// among equal MinimumDays. Returns nil when no rule qualifies.
func BestDiscount(rules []DiscountRule, nights int) *DiscountRule {
	if len(rules) == 0 {
		return nil
	}
	sorted := make([]DiscountRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinimumDays > sorted[j].MinimumDays
	})
	for i := range sorted {
		if sorted[i].MinimumDays <= nights {
			return &sorted[i]
		}
	}
	return nil
}

// NightsBetween counts whole calendar nights between two dates, ignoring
// time of day and UTC offset.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(truncateDay(checkOut).Sub(truncateDay(checkIn)).Hours() / 24)
}

// truncateDay pins a timestamp's calendar day to UTC midnight. UTC has no
// transitions, so day arithmetic stays exact even when check-in and check-out
// arrive with different offsets.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
