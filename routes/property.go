package routes

import (
	"encoding/json"

	"bookaroo-server/models"
	"bookaroo-server/storage"
	"bookaroo-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
)

var propertyTypes = []string{"room", "apartment", "house", "villa"}

type CreatePropertyInput struct {
	Name          string             `json:"name" validate:"required,max=256"`
	Description   string             `json:"description"`
	Location      string             `json:"location" validate:"required"`
	Type          string             `json:"type" validate:"required"`
	BasePrice     float64            `json:"basePrice" validate:"required,gt=0"`
	MaxGuests     int                `json:"maxGuests" validate:"required,gte=1,lte=16"`
	Bedrooms      int                `json:"bedrooms" validate:"gte=0"`
	Bathrooms     float32            `json:"bathrooms" validate:"gte=0"`
	CleaningFee   *float64           `json:"cleaningFee" validate:"omitempty,gte=0"`
	Currency      string             `json:"currency"`
	Amenities     []string           `json:"amenities"`
	SeasonalRates map[string]float64 `json:"seasonalRates"`
}

func CreateProperty(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !slices.Contains(propertyTypes, input.Type) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "type must be one of room, apartment, house, villa", ctx)
		return
	}
	for key, mult := range input.SeasonalRates {
		if mult <= 0 {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "seasonal multiplier for "+key+" must be positive", ctx)
			return
		}
	}

	cleaningFee := float64(models.DefaultCleaningFee)
	if input.CleaningFee != nil {
		cleaningFee = *input.CleaningFee
	}

	amenities, _ := json.Marshal(input.Amenities)
	rates, _ := json.Marshal(input.SeasonalRates)

	property := models.Property{
		HostID:        userID,
		Name:          input.Name,
		Description:   input.Description,
		Location:      input.Location,
		Type:          input.Type,
		BasePrice:     input.BasePrice,
		MaxGuests:     input.MaxGuests,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		CleaningFee:   cleaningFee,
		Currency:      input.Currency,
		Amenities:     datatypes.JSON(amenities),
		SeasonalRates: datatypes.JSON(rates),
		WidgetKey:     utils.GenerateShortToken(16),
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

func GetProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	if err := storage.DB.Preload("Discounts", "active = ?", true).First(&property, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	ctx.JSON(property)
}

func GetPropertiesByUserID(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var properties []models.Property
	if err := storage.DB.Preload("Discounts").Where("host_id = ?", id).Order("created_at DESC").Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(properties)
}

type UpdatePropertyInput struct {
	Name          *string            `json:"name" validate:"omitempty,max=256"`
	Description   *string            `json:"description"`
	Location      *string            `json:"location"`
	BasePrice     *float64           `json:"basePrice" validate:"omitempty,gt=0"`
	MaxGuests     *int               `json:"maxGuests" validate:"omitempty,gte=1,lte=16"`
	Bedrooms      *int               `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms     *float32           `json:"bathrooms" validate:"omitempty,gte=0"`
	CleaningFee   *float64           `json:"cleaningFee" validate:"omitempty,gte=0"`
	IsActive      *bool              `json:"isActive"`
	Amenities     []string           `json:"amenities"`
	SeasonalRates map[string]float64 `json:"seasonalRates"`
}

func UpdateProperty(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	property, ok := ownedProperty(ctx, id, userID)
	if !ok {
		return
	}

	var input UpdatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != nil {
		property.Name = *input.Name
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.Location != nil {
		property.Location = *input.Location
	}
	if input.BasePrice != nil {
		property.BasePrice = *input.BasePrice
	}
	if input.MaxGuests != nil {
		property.MaxGuests = *input.MaxGuests
	}
	if input.Bedrooms != nil {
		property.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		property.Bathrooms = *input.Bathrooms
	}
	if input.CleaningFee != nil {
		property.CleaningFee = *input.CleaningFee
	}
	if input.IsActive != nil {
		property.IsActive = input.IsActive
	}
	if input.Amenities != nil {
		amenities, _ := json.Marshal(input.Amenities)
		property.Amenities = datatypes.JSON(amenities)
	}
	if input.SeasonalRates != nil {
		for key, mult := range input.SeasonalRates {
			if mult <= 0 {
				utils.CreateError(iris.StatusBadRequest, "Validation Error", "seasonal multiplier for "+key+" must be positive", ctx)
				return
			}
		}
		rates, _ := json.Marshal(input.SeasonalRates)
		property.SeasonalRates = datatypes.JSON(rates)
	}

	if err := storage.DB.Save(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

func DeleteProperty(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	property, ok := ownedProperty(ctx, id, userID)
	if !ok {
		return
	}

	if err := storage.DB.Delete(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

type DiscountInput struct {
	PropertyID  uint    `json:"propertyID" validate:"required"`
	MinimumDays int     `json:"minimumDays" validate:"required,gt=0"`
	Percentage  float64 `json:"percentage" validate:"required,gt=0,lte=100"`
}

func CreateStayDiscount(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input DiscountInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Where("id = ? AND host_id = ?", input.PropertyID, userID).First(&property).Error; err != nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Property not found or access denied", ctx)
		return
	}

	discount := models.StayDiscount{
		PropertyID:  input.PropertyID,
		MinimumDays: input.MinimumDays,
		Percentage:  input.Percentage,
		Active:      true,
	}
	if err := storage.DB.Create(&discount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(discount)
}

func DeleteStayDiscount(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var discount models.StayDiscount
	if err := storage.DB.First(&discount, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Where("id = ? AND host_id = ?", discount.PropertyID, userID).First(&property).Error; err != nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Property not found or access denied", ctx)
		return
	}

	if err := storage.DB.Delete(&discount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

// ownedProperty loads a property and enforces host ownership, writing the
// error response itself when the check fails.
func ownedProperty(ctx iris.Context, id interface{}, userID uint) (*models.Property, bool) {
	var property models.Property
	if err := storage.DB.Where("id = ? AND host_id = ?", id, userID).First(&property).Error; err != nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Property not found or access denied", ctx)
		return nil, false
	}
	return &property, true
}
