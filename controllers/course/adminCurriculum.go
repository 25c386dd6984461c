package controllers

import (
	"easylearn/database"
	"easylearn/middleware"
	courseModels "easylearn/models/course"
	"easylearn/utils"

	"github.com/gofiber/fiber/v2"
)

func loadOwnedCourse(c *fiber.Ctx, courseID int) (*courseModels.Course, error) {
	userID := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.AuthorID != userID && role != "ADMIN" {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}
	return &course, nil
}

// CreateChapter adds a chapter to a course owned by the caller
func CreateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	req, ok := c.Locals("validatedChapter").(*struct {
		Title      string `json:"title"`
		OrderIndex int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	chapter := courseModels.Chapter{
		CourseID:   course.ID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	}

	if err := database.Database.Db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter created successfully!", chapter)
}

// CreateLecture adds a lecture to a chapter of a course owned by the caller
func CreateLecture(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)

	course, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, courseID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found in this course!", nil)
	}

	req, ok := c.Locals("validatedLecture").(*struct {
		Title         string `json:"title"`
		Duration      string `json:"duration"`
		VideoURL      string `json:"video_url"`
		IsFreePreview bool   `json:"is_free_preview"`
		OrderIndex    int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lecture := courseModels.Lecture{
		ChapterID:     chapter.ID,
		CourseID:      course.ID,
		Title:         req.Title,
		Duration:      req.Duration,
		VideoURL:      req.VideoURL,
		IsFreePreview: req.IsFreePreview,
		OrderIndex:    req.OrderIndex,
	}
	if lecture.Duration == "" {
		lecture.Duration = "0"
	}

	if err := database.Database.Db.Create(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture created successfully!", lecture)
}

// UploadLectureVideo stores an uploaded video file and attaches its URL to
// the lecture
func UploadLectureVideo(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	lectureID := c.Locals("lectureID").(int)

	course, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lectureID, courseID, false).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found in this course!", nil)
	}

	file, err := c.FormFile("video")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video file is required!", nil)
	}

	savedPath, err := utils.SaveUploadedFile(file, "videos")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	videoURL := utils.GetFileURL(savedPath)
	if err := database.Database.Db.Model(&lecture).Update("video_url", videoURL).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}
	lecture.VideoURL = videoURL

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video uploaded successfully!", lecture)
}

// DeleteLecture soft-deletes a lecture
func DeleteLecture(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	lectureID := c.Locals("lectureID").(int)

	course, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lectureID, courseID, false).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found in this course!", nil)
	}

	if err := database.Database.Db.Model(&lecture).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted successfully!", nil)
}

// GetCourseCurriculum returns the full chapter and lecture tree for a course
// owned by the caller, drafts included
func GetCourseCurriculum(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var chapters []courseModels.Chapter
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").
		Preload("Lectures", "is_deleted = ?", false).
		Find(&chapters).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch curriculum!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Curriculum fetched successfully!", fiber.Map{
		"course":   course,
		"chapters": chapters,
	})
}
