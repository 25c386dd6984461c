package paymentController

import (
	"easylearn/database"
	"easylearn/middleware"
	"easylearn/models"
	courseModels "easylearn/models/course"
	"easylearn/utils"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CreateCheckout creates a pending payment and a gateway order for a paid
// course. The client completes the payment on the gateway; the webhook
// finishes enrollment.
func CreateCheckout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	req, ok := c.Locals("validatedCheckout").(*struct {
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", req.CourseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	if course.Price <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is free, enroll directly!", nil)
	}

	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, course.ID, false).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	receipt := fmt.Sprintf("course_%d_user_%d_%s", course.ID, userID, uuid.New().String()[:8])
	order, err := utils.CreateGatewayOrder(course.Price, receipt)
	if err != nil {
		log.Printf("Failed to create gateway order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create payment order!", nil)
	}

	payment := courseModels.Payment{
		UserID:   userID,
		CourseID: course.ID,
		OrderID:  order.ID,
		Amount:   course.Price,
		Currency: order.Currency,
		Status:   courseModels.PaymentPending,
	}

	if err := database.Database.Db.Create(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout created successfully!", fiber.Map{
		"payment_id": payment.ID,
		"order_id":   order.ID,
		"amount":     payment.Amount,
		"currency":   payment.Currency,
		"course_id":  course.ID,
	})
}

// PaymentWebhook handles the gateway confirmation callback. A successful
// payment marks the record completed and creates the enrollment. Replayed
// webhooks for an already settled order are acknowledged without changes.
func PaymentWebhook(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedWebhook").(*struct {
		OrderID    string `json:"order_id"`
		PaymentRef string `json:"payment_id"`
		Status     string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook data!", nil)
	}

	var payment courseModels.Payment
	if err := database.Database.Db.Where("order_id = ?", req.OrderID).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found for this order!", nil)
	}

	if payment.Status != courseModels.PaymentPending {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment already processed!", payment)
	}

	payload, _ := json.Marshal(req)

	if req.Status != "captured" && req.Status != "paid" {
		database.Database.Db.Model(&payment).Updates(map[string]interface{}{
			"status":          courseModels.PaymentFailed,
			"payment_ref":     req.PaymentRef,
			"gateway_payload": datatypes.JSON(payload),
		})
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment marked as failed!", nil)
	}

	// Cross-check the payment with the gateway before trusting the webhook
	gwPayment, err := utils.FetchGatewayPayment(req.PaymentRef)
	if err != nil {
		log.Printf("Failed to verify payment %s with gateway: %v", req.PaymentRef, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to verify payment with gateway!", nil)
	}
	if gwPayment.OrderID != payment.OrderID || gwPayment.Amount != payment.Amount {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment verification mismatch!", nil)
	}

	tx := database.Database.Db.Begin()

	if err := tx.Model(&payment).Updates(map[string]interface{}{
		"status":          courseModels.PaymentCompleted,
		"payment_ref":     req.PaymentRef,
		"gateway_payload": datatypes.JSON(payload),
	}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:     payment.UserID,
		CourseID:   payment.CourseID,
		PaymentID:  &payment.ID,
		Status:     courseModels.EnrollmentActive,
		EnrolledAt: time.Now(),
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create enrollment!", nil)
	}

	tx.Commit()

	go func(userID, courseID uint) {
		var user models.User
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
			return
		}
		if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
			return
		}
		if err := utils.SendEnrollmentEmail(user.Email, user.Name, course.Title); err != nil {
			log.Printf("Error sending enrollment email: %v", err)
		}
	}(payment.UserID, payment.CourseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment completed and enrollment created!", enrollment)
}

// PaymentHistory lists the current user's payments
func PaymentHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var payments []courseModels.Payment
	if err := database.Database.Db.Where("user_id = ?", userID).Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": payments,
		"total":    len(payments),
	})
}
