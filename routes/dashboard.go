package routes

import (
	"time"

	"bookaroo-server/dashboard"
	"bookaroo-server/models"
	"bookaroo-server/storage"
	"bookaroo-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/dashboard/metrics
// HostDashboardMetrics aggregates the authenticated host's bookings into
// revenue, occupancy and pending counts.
func HostDashboardMetrics(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var propertyCount int64
	if err := storage.DB.Model(&models.Property{}).Where("host_id = ?", userID).Count(&propertyCount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var bookings []models.Booking
	res := storage.DB.
		Joins("JOIN properties p ON p.id = bookings.property_id").
		Where("p.host_id = ?", userID).
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	metrics := dashboard.Compute(bookings, int(propertyCount), time.Now())

	utils.JSONEnvelope(ctx, metrics, iris.Map{
		"properties": propertyCount,
		"windowDays": dashboard.OccupancyWindowDays,
	})
}

// GET /api/dashboard/recent
// RecentBookings lists the host's latest booking activity for the dashboard
// sidebar.
func RecentBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	res := storage.DB.
		Joins("JOIN properties p ON p.id = bookings.property_id").
		Where("p.host_id = ?", userID).
		Preload("Property").
		Order("bookings.created_at DESC").
		Limit(20).
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONEnvelope(ctx, bookings, iris.Map{})
}
