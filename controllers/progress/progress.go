package progressController

import (
	"easylearn/database"
	"easylearn/middleware"
	"easylearn/models"
	courseModels "easylearn/models/course"
	"easylearn/progress"
	"easylearn/utils"
	progressValidator "easylearn/validators/progress"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Controller serves the lesson progress endpoints on top of an injected
// engine, so tests can run it against an in-memory database.
type Controller struct {
	Engine *progress.Engine
}

func New(engine *progress.Engine) *Controller {
	return &Controller{Engine: engine}
}

// SaveProgress records a watch event for a lesson and returns the updated
// lesson row plus the recomputed course aggregate
func (ctrl *Controller) SaveProgress(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedProgress").(*progressValidator.SaveProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	userID := req.UserID
	if authID, ok := c.Locals("userId").(uint); ok && userID == 0 {
		userID = authID
	}

	result, err := ctrl.Engine.RecordLessonProgress(userID, req.CourseID, req.LectureID, req.Progress, req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, progress.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, progress.ErrLessonNotInCourse):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found in this course!", nil)
		case errors.Is(err, progress.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
	}

	// Completion email only on the call that finished the last lesson
	if result.JustCompleted {
		go notifyCourseCompleted(userID, req.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress saved successfully!", result)
}

func notifyCourseCompleted(userID, courseID uint) {
	if database.Database.Db == nil {
		return
	}
	var user models.User
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return
	}
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return
	}
	if err := utils.SendCompletionEmail(user.Email, user.Name, course.Title); err != nil {
		log.Printf("Error sending completion email: %v", err)
	}
}

// GetProgress returns per-lesson rows and the course aggregate for a user
func (ctrl *Controller) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals("progressUserID").(uint)
	courseID := c.Locals("courseID").(int)

	result, err := ctrl.Engine.GetUserProgress(userID, uint(courseID))
	if err != nil {
		switch {
		case errors.Is(err, progress.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, progress.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", result)
}
