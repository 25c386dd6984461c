package paymentRoutes

import (
	paymentController "easylearn/controllers/payment"
	"easylearn/middleware"
	paymentValidators "easylearn/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/checkout", middleware.JWTMiddleware, paymentValidators.Checkout(), paymentController.CreateCheckout)
	paymentGroup.Get("/history", middleware.JWTMiddleware, paymentController.PaymentHistory)

	// Gateway callback, authenticated by payment verification not JWT
	paymentGroup.Post("/webhook", paymentValidators.Webhook(), paymentController.PaymentWebhook)
}
