package progressValidator

import (
	"easylearn/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SaveProgressRequest is the coerced body for POST /progress
type SaveProgressRequest struct {
	UserID    uint
	CourseID  uint
	LectureID uint
	Progress  float64
	Completed bool
}

// SaveProgress validates the watch-event body. Identifiers are mandatory and
// rejected with 400 when missing or malformed; progress and completed are
// lenient and coerce to 0/false, matching how the player emits partial
// events.
func SaveProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID  uint        `json:"courseId"`
			LessonID  uint        `json:"lessonId"`
			UserID    uint        `json:"userId"`
			Progress  interface{} `json:"progress"`
			Completed interface{} `json:"completed"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if reqData.LessonID == 0 {
			errors["lessonId"] = "Lesson ID is required!"
		}
		if reqData.UserID == 0 {
			errors["userId"] = "User ID is required!"
		}

		if len(errors) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing or invalid identifiers!", errors)
		}

		c.Locals("validatedProgress", &SaveProgressRequest{
			UserID:    reqData.UserID,
			CourseID:  reqData.CourseID,
			LectureID: reqData.LessonID,
			Progress:  coerceSeconds(reqData.Progress),
			Completed: coerceBool(reqData.Completed),
		})
		return c.Next()
	}
}

// GetProgress validates the :userId/:courseId route parameters
func GetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("userId"))
		courseIDStr := strings.TrimSpace(c.Params("courseId"))

		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("progressUserID", uint(userID))
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// coerceSeconds accepts a number or a numeric string; anything else counts
// as zero watched seconds rather than failing the event.
func coerceSeconds(v interface{}) float64 {
	switch s := v.(type) {
	case float64:
		if s < 0 {
			return 0
		}
		return s
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case float64:
		return b != 0
	default:
		return false
	}
}
