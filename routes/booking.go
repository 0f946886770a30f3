package routes

import (
	"strings"
	"time"

	"bookaroo-server/availability"
	"bookaroo-server/booking"
	"bookaroo-server/models"
	"bookaroo-server/pricing"
	"bookaroo-server/services"
	"bookaroo-server/storage"
	"bookaroo-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuoteRequestInput struct {
	PropertyID uint      `json:"propertyID" validate:"required"`
	CheckIn    time.Time `json:"checkIn" validate:"required"`
	CheckOut   time.Time `json:"checkOut" validate:"required"`
	NumGuests  int       `json:"numGuests" validate:"required,gte=1,lte=16"`
}

// CalculateBookingPrice quotes a stay for the widget. The widget calls this
// on every date-range or guest-count change.
func CalculateBookingPrice(ctx iris.Context) {
	var input QuoteRequestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Preload("Discounts", "active = ?", true).First(&property, input.PropertyID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	quote, err := quoteStay(&property, input.CheckIn, input.CheckOut, input.NumGuests)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if quote == nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "checkOut must be after checkIn", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":  true,
		"data":     quote,
		"currency": property.Currency,
	})
}

type SubmitBookingInput struct {
	PropertyID    uint      `json:"propertyID" validate:"required"`
	CheckIn       time.Time `json:"checkIn" validate:"required"`
	CheckOut      time.Time `json:"checkOut" validate:"required"`
	NumGuests     int       `json:"numGuests" validate:"required,gte=1,lte=16"`
	CustomerName  string    `json:"customerName" validate:"required"`
	CustomerEmail string    `json:"customerEmail" validate:"required,email"`
	CustomerPhone string    `json:"customerPhone" validate:"required"`
	Note          string    `json:"note"`
}

// SubmitBooking persists the booking row and its per-night calendar rows in
// one transaction. Existing rows in the range are locked before the status
// check, and the (property_id, date) unique index stops an interleaved
// insert, so the second of two competing submissions always fails with 409
// instead of double-booking.
func SubmitBooking(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input SubmitBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.CheckIn.Before(input.CheckOut) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "checkIn must be before checkOut", ctx)
		return
	}
	if !utils.ValidatePhoneNumber(input.CustomerPhone) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "customerPhone is not a valid phone number", ctx)
		return
	}
	input.CustomerPhone = utils.NormalizePhoneNumber(input.CustomerPhone)

	var property models.Property
	if err := storage.DB.Preload("Discounts", "active = ?", true).First(&property, input.PropertyID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}
	if property.IsActive != nil && !*property.IsActive {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Property is not accepting bookings", ctx)
		return
	}
	if input.NumGuests > property.MaxGuests {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Guest count exceeds property capacity", ctx)
		return
	}
	if availability.Midnight(input.CheckIn).Before(availability.Midnight(time.Now())) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "checkIn must not be in the past", ctx)
		return
	}

	quote, err := quoteStay(&property, input.CheckIn, input.CheckOut, input.NumGuests)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if quote == nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "checkOut must be after checkIn", ctx)
		return
	}

	overrides, err := fetchNightlyOverrides(property.ID, input.CheckIn, input.CheckOut)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var reservation models.Booking
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		nights := availability.Nights(input.CheckIn, input.CheckOut)

		// Lock the range's existing rows so a competing submission blocks
		// here and sees our statuses after commit.
		var existing []models.AvailabilityDay
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("property_id = ? AND date >= ? AND date < ?",
				property.ID, availability.Midnight(input.CheckIn), availability.Midnight(input.CheckOut)).
			Find(&existing).Error; err != nil {
			return err
		}

		existingByDay := make(map[string]*models.AvailabilityDay, len(existing))
		for i := range existing {
			if existing[i].Unavailable() {
				return booking.ErrDatesUnavailable
			}
			existingByDay[availability.DayKey(existing[i].Date)] = &existing[i]
		}

		reservation = models.Booking{
			PropertyID:         property.ID,
			GuestID:            claims.ID,
			CheckIn:            input.CheckIn,
			CheckOut:           input.CheckOut,
			NumGuests:          input.NumGuests,
			CustomerName:       input.CustomerName,
			CustomerEmail:      input.CustomerEmail,
			CustomerPhone:      input.CustomerPhone,
			BaseTotal:          quote.BaseTotal,
			SeasonalAdjustment: quote.SeasonalAdjustment,
			Discount:           quote.Discount,
			CleaningFee:        quote.CleaningFee,
			ServiceFee:         quote.ServiceFee,
			TotalPrice:         quote.Total,
			Status:             models.BookingPending,
			Note:               input.Note,
			ExpiresAt:          time.Now().Add(24 * time.Hour),
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}

		for _, day := range nights {
			nightly := property.BasePrice
			if override, ok := overrides[availability.DayKey(day)]; ok {
				nightly = override
			}

			if row, ok := existingByDay[availability.DayKey(day)]; ok {
				if err := tx.Model(row).Updates(map[string]interface{}{
					"status":     models.DayPending,
					"booking_id": reservation.ID,
				}).Error; err != nil {
					return err
				}
				continue
			}

			entry := models.AvailabilityDay{
				PropertyID: property.ID,
				Date:       day,
				Status:     models.DayPending,
				Price:      &nightly,
				BookingID:  &reservation.ID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				// A duplicate key here means a competing transaction
				// inserted the night between our lock and this write.
				if strings.Contains(err.Error(), "duplicate key") {
					return booking.ErrDatesUnavailable
				}
				return err
			}
		}
		return nil
	})

	if txErr == booking.ErrDatesUnavailable {
		utils.CreateDatesUnavailable(ctx)
		return
	}
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	confirmation := booking.PropertyConfirmation{
		BookingID:    reservation.ID,
		PropertyName: property.Name,
		CheckIn:      reservation.CheckIn,
		CheckOut:     reservation.CheckOut,
		NumGuests:    reservation.NumGuests,
		TotalPrice:   reservation.TotalPrice,
		Currency:     property.Currency,
	}
	ctx.JSON(iris.Map{
		"success":      true,
		"kind":         confirmation.Kind(),
		"confirmation": confirmation,
	})
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=confirmed rejected cancelled completed"`
}

// UpdateBookingStatus is the host action on a booking request. Confirming
// promotes the held nights to booked; rejecting or cancelling releases them.
func UpdateBookingStatus(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var input UpdateBookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var reservation models.Booking
	if err := storage.DB.Preload("Property").First(&reservation, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return
	}
	if reservation.Property == nil || reservation.Property.HostID != userID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Booking belongs to another host", ctx)
		return
	}

	// Auto-expire stale pending requests instead of applying the host action.
	if reservation.Status == models.BookingPending && time.Now().After(reservation.ExpiresAt) {
		reservation.Status = models.BookingExpired
	} else {
		switch input.Status {
		case "rejected":
			reservation.Status = models.BookingCancelled
		default:
			reservation.Status = input.Status
		}
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		switch reservation.Status {
		case models.BookingConfirmed:
			return tx.Model(&models.AvailabilityDay{}).
				Where("booking_id = ?", reservation.ID).
				Update("status", models.DayBooked).Error
		case models.BookingCancelled, models.BookingExpired:
			return releaseBookingNights(tx, reservation.ID)
		}
		return nil
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reservation)
}

// CancelBooking is the guest-side cancellation; it frees the held nights in
// the same transaction as the status change.
func CancelBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID", ctx)
		return
	}

	var reservation models.Booking
	if err := storage.DB.Where("id = ? AND guest_id = ?", id, userID).First(&reservation).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return
	}

	if reservation.Status == models.BookingCancelled {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Booking is already cancelled", ctx)
		return
	}
	if reservation.Status == models.BookingCompleted {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Completed bookings cannot be cancelled", ctx)
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		reservation.Status = models.BookingCancelled
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		return releaseBookingNights(tx, reservation.ID)
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Booking cancelled"})
}

func GetBookingsByPropertyID(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	if _, ok := ownedProperty(ctx, id, userID); !ok {
		return
	}

	var bookings []models.Booking
	res := storage.DB.Preload("Guest").Where("property_id = ?", id).Order("created_at DESC").Find(&bookings)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(bookings)
}

// GetHostBookings returns bookings for all properties owned by the
// authenticated host.
func GetHostBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	res := storage.DB.
		Joins("JOIN properties p ON p.id = bookings.property_id").
		Where("p.host_id = ?", userID).
		Preload("Property").
		Preload("Guest").
		Order("bookings.created_at DESC").
		Find(&bookings)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(bookings)
}

func GetUserBookings(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var bookings []models.Booking
	res := storage.DB.Preload("Property").Where("guest_id = ?", id).Order("created_at DESC").Find(&bookings)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(bookings)
}

// ExpirePendingBookings flips stale pending requests to expired and frees
// their nights. The cron scheduler runs the same job hourly; this endpoint
// exists for manual admin runs.
func ExpirePendingBookings(ctx iris.Context) {
	expired, err := services.ExpireStalePendingBookings()
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"ok": true, "expired": expired})
}

// releaseBookingNights returns a booking's calendar rows to available,
// keeping any per-night price override for future quotes.
func releaseBookingNights(tx *gorm.DB, bookingID uint) error {
	return tx.Model(&models.AvailabilityDay{}).
		Where("booking_id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":     models.DayAvailable,
			"booking_id": nil,
		}).Error
}

// quoteStay assembles the pricing input for a property and prices the stay.
// A nil quote with nil error means the range is not priceable yet.
func quoteStay(property *models.Property, checkIn, checkOut time.Time, guests int) (*pricing.Quote, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !checkIn.Before(checkOut) {
		return nil, nil
	}

	overrides, err := fetchNightlyOverrides(property.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	rules := make([]pricing.DiscountRule, 0, len(property.Discounts))
	for _, d := range property.Discounts {
		if d.Active {
			rules = append(rules, pricing.DiscountRule{MinimumDays: d.MinimumDays, Percentage: d.Percentage})
		}
	}

	return pricing.ComputeQuote(pricing.QuoteInput{
		BasePrice:     property.BasePrice,
		CleaningFee:   property.CleaningFee,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        guests,
		NightlyPrices: overrides,
		SeasonalRates: property.SeasonalRateMap(),
		Discounts:     rules,
	}), nil
}
