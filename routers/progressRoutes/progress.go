package progressRoutes

import (
	progressController "easylearn/controllers/progress"
	"easylearn/middleware"
	progressValidators "easylearn/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes wires the lesson progress endpoints. The controller
// carries the engine so callers decide which database backs it.
func SetupProgressRoutes(app *fiber.App, ctrl *progressController.Controller) {
	app.Post("/progress", middleware.JWTMiddleware, progressValidators.SaveProgress(), ctrl.SaveProgress)
	app.Get("/progress/:userId/:courseId", middleware.JWTMiddleware, progressValidators.GetProgress(), ctrl.GetProgress)
}
