package utils

import (
	"easylearn/database"
	courseModels "easylearn/models/course"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializePaymentScheduler sets up the pending payment expiry scheduler
func InitializePaymentScheduler() {
	log.Println("[PAYMENT-SCHEDULER] Initializing payment scheduler...")

	c := cron.New()

	// Run every 30 minutes to expire stale pending payments
	c.AddFunc("*/30 * * * *", func() {
		log.Println("[PAYMENT-SCHEDULER] Running pending payment check...")
		ExpireStalePayments()
	})

	c.Start()
	log.Println("[PAYMENT-SCHEDULER] Payment scheduler started - runs every 30 minutes")
}

// ExpireStalePayments marks pending payments older than 24 hours as failed.
// The gateway order has long expired by then; a fresh checkout creates a
// new order.
func ExpireStalePayments() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	result := db.Model(&courseModels.Payment{}).
		Where("status = ? AND created_at < ?", courseModels.PaymentPending, cutoff).
		Update("status", courseModels.PaymentFailed)

	if result.Error != nil {
		log.Printf("[PAYMENT-SCHEDULER] Error expiring stale payments: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[PAYMENT-SCHEDULER] Expired %d stale pending payments", result.RowsAffected)
	}
}
