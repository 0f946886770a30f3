package services

import (
	"log"
	"time"

	"bookaroo-server/models"
	"bookaroo-server/storage"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartScheduler runs the background jobs: hourly expiry of stale pending
// bookings. Returns the cron so main can stop it on shutdown.
func StartScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		expired, err := ExpireStalePendingBookings()
		if err != nil {
			log.Printf("scheduler: expire pending bookings: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("scheduler: expired %d pending bookings", expired)
		}
	})

	c.Start()
	return c
}

// ExpireStalePendingBookings flips pending bookings past their 24h window
// to expired and releases their held nights. Each booking is handled in its
// own transaction so one failure does not wedge the rest.
func ExpireStalePendingBookings() (int64, error) {
	var stale []models.Booking
	if err := storage.DB.Where("status = ? AND expires_at < ?", models.BookingPending, time.Now()).Find(&stale).Error; err != nil {
		return 0, err
	}

	var count int64
	for i := range stale {
		err := storage.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&stale[i]).Update("status", models.BookingExpired).Error; err != nil {
				return err
			}
			return tx.Model(&models.AvailabilityDay{}).
				Where("booking_id = ?", stale[i].ID).
				Updates(map[string]interface{}{
					"status":     models.DayAvailable,
					"booking_id": nil,
				}).Error
		})
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
