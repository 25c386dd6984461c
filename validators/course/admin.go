package courseValidator

import (
	"easylearn/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx, name string) (int, bool) {
	idStr := strings.TrimSpace(c.Params(name))
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateCourseAdmin validates the instructor course creation body
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Subtitle    string `json:"subtitle"`
			Description string `json:"description"`
			Category    string `json:"category"`
			Level       string `json:"level"`
			Price       int64  `json:"price"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.Level != "" {
			switch reqData.Level {
			case "BEGINNER", "INTERMEDIATE", "ADVANCED":
			default:
				errors["level"] = "Level must be BEGINNER, INTERMEDIATE or ADVANCED!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates the course update body and :id parameter
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title        *string `json:"title"`
			Subtitle     *string `json:"subtitle"`
			Description  *string `json:"description"`
			Category     *string `json:"category"`
			Level        *string `json:"level"`
			Price        *int64  `json:"price"`
			ThumbnailURL *string `json:"thumbnail_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CreateChapter validates the chapter creation body and course :id parameter
func CreateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title      string `json:"title"`
			OrderIndex int    `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Chapter title is required!"})
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

// CreateLecture validates the lecture creation body and route parameters.
// Duration is accepted as a numeric string in minutes; a malformed value is
// rejected here even though readers coerce legacy rows to zero.
func CreateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		chapterID, ok := paramID(c, "chapter_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Chapter ID!", nil)
		}

		reqData := new(struct {
			Title         string `json:"title"`
			Duration      string `json:"duration"`
			VideoURL      string `json:"video_url"`
			IsFreePreview bool   `json:"is_free_preview"`
			OrderIndex    int    `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Lecture title is required!"
		}
		if reqData.Duration != "" {
			if d, err := strconv.ParseFloat(reqData.Duration, 64); err != nil || d < 0 {
				errors["duration"] = "Duration must be a non-negative number of minutes!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("chapterID", chapterID)
		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

// CourseIDParam validates the :course_id route parameter
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// LectureID validates the :lecture_id route parameter
func LectureID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lectureID, ok := paramID(c, "lecture_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lecture ID!", nil)
		}
		c.Locals("lectureID", lectureID)
		return c.Next()
	}
}

// PublishCourse validates the :id parameter and publish flag body
func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Publish *bool `json:"publish"`
		})
		if err := c.BodyParser(reqData); err != nil || reqData.Publish == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Publish flag is required!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("publishFlag", *reqData.Publish)
		return c.Next()
	}
}

// StudentProgress validates the :user_id and :course_id parameters for the
// instructor dashboard view
func StudentProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := paramID(c, "user_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}
		courseID, ok := paramID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("studentID", userID)
		c.Locals("courseID", courseID)
		return c.Next()
	}
}
