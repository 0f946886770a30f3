package routes

import (
	"time"

	"bookaroo-server/availability"
	"bookaroo-server/models"
	"bookaroo-server/storage"
	"bookaroo-server/utils"

	"github.com/kataras/iris/v12"
)

// GetPropertyAvailability returns the per-day calendar for a date range,
// plus the flat list of unavailable days the widget greys out. Days with no
// row are implicitly available at the property's base price.
func GetPropertyAvailability(ctx iris.Context) {
	propertyID := ctx.Params().Get("propertyID")

	startDate, endDate, ok := parseRangeParams(ctx)
	if !ok {
		return
	}

	var days []models.AvailabilityDay
	res := storage.DB.Where("property_id = ? AND date >= ? AND date < ?",
		propertyID, startDate, endDate).Order("date ASC").Find(&days)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", "Failed to fetch availability", ctx)
		return
	}

	unavailable := availability.FromDays(days)
	blocked := make([]string, 0, len(unavailable))
	today := time.Now()
	for d := availability.Midnight(startDate); d.Before(availability.Midnight(endDate)); d = d.AddDate(0, 0, 1) {
		if availability.IsDateBlocked(d, unavailable, today) {
			blocked = append(blocked, availability.DayKey(d))
		}
	}

	ctx.JSON(iris.Map{
		"success":          true,
		"data":             days,
		"unavailableDates": blocked,
	})
}

type BlockDatesInput struct {
	PropertyID uint      `json:"propertyID" validate:"required"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	Reason     string    `json:"reason"`
}

// BlockPropertyDates marks every night in [startDate, endDate) blocked.
// Nights already booked or pending are skipped rather than overwritten; the
// response reports them so the host can see what survived.
func BlockPropertyDates(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input BlockDatesInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.StartDate.Before(input.EndDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startDate must be before endDate", ctx)
		return
	}

	if _, ok := ownedProperty(ctx, input.PropertyID, userID); !ok {
		return
	}

	var skipped []string
	for _, day := range availability.Nights(input.StartDate, input.EndDate) {
		var existing models.AvailabilityDay
		err := storage.DB.Where("property_id = ? AND date = ?", input.PropertyID, day).First(&existing).Error
		if err == nil {
			if existing.Status == models.DayBooked || existing.Status == models.DayPending {
				skipped = append(skipped, availability.DayKey(day))
				continue
			}
			existing.Status = models.DayBlocked
			existing.Note = input.Reason
			if err := storage.DB.Save(&existing).Error; err != nil {
				utils.CreateInternalServerError(ctx)
				return
			}
			continue
		}

		entry := models.AvailabilityDay{
			PropertyID: input.PropertyID,
			Date:       day,
			Status:     models.DayBlocked,
			Note:       input.Reason,
		}
		if err := storage.DB.Create(&entry).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Dates blocked",
		"skipped": skipped,
	})
}

type UnblockDatesInput struct {
	PropertyID uint      `json:"propertyID" validate:"required"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
}

// UnblockPropertyDates returns manually blocked nights to available. Booked
// and pending nights are untouched; only a booking cancellation frees those.
func UnblockPropertyDates(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input UnblockDatesInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if _, ok := ownedProperty(ctx, input.PropertyID, userID); !ok {
		return
	}

	res := storage.DB.Model(&models.AvailabilityDay{}).
		Where("property_id = ? AND date >= ? AND date < ? AND status = ?",
			input.PropertyID, input.StartDate, input.EndDate, models.DayBlocked).
		Updates(map[string]interface{}{"status": models.DayAvailable, "note": ""})
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "unblocked": res.RowsAffected})
}

type NightlyPriceInput struct {
	PropertyID uint      `json:"propertyID" validate:"required"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	Price      float64   `json:"price" validate:"required,gt=0"`
}

// SetNightlyPrices upserts a per-night price override for every night in
// [startDate, endDate). Overrides on booked nights are allowed; they only
// affect future quotes.
func SetNightlyPrices(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input NightlyPriceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !input.StartDate.Before(input.EndDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startDate must be before endDate", ctx)
		return
	}

	if _, ok := ownedProperty(ctx, input.PropertyID, userID); !ok {
		return
	}

	for _, day := range availability.Nights(input.StartDate, input.EndDate) {
		var existing models.AvailabilityDay
		err := storage.DB.Where("property_id = ? AND date = ?", input.PropertyID, day).First(&existing).Error
		if err == nil {
			if err := storage.DB.Model(&existing).Update("price", input.Price).Error; err != nil {
				utils.CreateInternalServerError(ctx)
				return
			}
			continue
		}

		price := input.Price
		entry := models.AvailabilityDay{
			PropertyID: input.PropertyID,
			Date:       day,
			Status:     models.DayAvailable,
			Price:      &price,
		}
		if err := storage.DB.Create(&entry).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(iris.Map{"success": true, "message": "Nightly prices updated"})
}

// parseRangeParams reads startDate/endDate query params as 2006-01-02.
func parseRangeParams(ctx iris.Context) (time.Time, time.Time, bool) {
	startStr := ctx.URLParam("startDate")
	endStr := ctx.URLParam("endDate")
	if startStr == "" || endStr == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startDate and endDate are required", ctx)
		return time.Time{}, time.Time{}, false
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid startDate format", ctx)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid endDate format", ctx)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// fetchNightlyOverrides loads per-night override prices for a range as the
// map the pricing package consumes.
func fetchNightlyOverrides(propertyID uint, checkIn, checkOut time.Time) (map[string]float64, error) {
	var days []models.AvailabilityDay
	err := storage.DB.Where("property_id = ? AND date >= ? AND date < ? AND price IS NOT NULL",
		propertyID, availability.Midnight(checkIn), availability.Midnight(checkOut)).Find(&days).Error
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]float64, len(days))
	for i := range days {
		if days[i].Price != nil {
			overrides[availability.DayKey(days[i].Date)] = *days[i].Price
		}
	}
	return overrides, nil
}
