package paymentValidator

import (
	"easylearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// Checkout validates the checkout body
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"course_id": "Course ID is required!"})
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}

// Webhook validates the gateway confirmation body
func Webhook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OrderID    string `json:"order_id"`
			PaymentRef string `json:"payment_id"`
			Status     string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook body!", nil)
		}

		errors := make(map[string]string)

		if reqData.OrderID == "" {
			errors["order_id"] = "Order ID is required!"
		}
		if reqData.Status == "" {
			errors["status"] = "Status is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWebhook", reqData)
		return c.Next()
	}
}
