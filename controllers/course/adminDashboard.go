package controllers

import (
	"easylearn/database"
	"easylearn/middleware"
	"easylearn/models"
	courseModels "easylearn/models/course"
	"easylearn/progress"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// GetCourseEnrollments lists students enrolled in a course owned by the
// caller, with their enrollment status
func GetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrolledStudent struct {
		courseModels.Enrollment
		StudentName  string `json:"student_name"`
		StudentEmail string `json:"student_email"`
	}

	students := make([]EnrolledStudent, len(enrollments))
	for i, e := range enrollments {
		var user models.User
		database.Database.Db.Where("id = ?", e.UserID).First(&user)
		students[i] = EnrolledStudent{
			Enrollment:   e,
			StudentName:  user.Name,
			StudentEmail: user.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"students": students,
		"total":    len(students),
	})
}

// GetStudentProgress returns one student's progress in a course owned by
// the caller
func GetStudentProgress(c *fiber.Ctx) error {
	studentID := c.Locals("studentID").(int)
	courseID := c.Locals("courseID").(int)

	course, err := loadOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	engine := progress.NewGormEngine(database.Database.Db)
	result, err := engine.GetUserProgress(uint(studentID), uint(courseID))
	if err != nil {
		switch {
		case errors.Is(err, progress.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, progress.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not enrolled in this course!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", result)
}

// GetDashboardStats returns aggregate counts for the caller's courses
func GetDashboardStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courseIDs []uint
	database.Database.Db.Model(&courseModels.Course{}).
		Where("author_id = ? AND is_deleted = ?", userID, false).
		Pluck("id", &courseIDs)

	var totalEnrollments, completedEnrollments, totalCertificates int64
	if len(courseIDs) > 0 {
		database.Database.Db.Model(&courseModels.Enrollment{}).
			Where("course_id IN ? AND is_deleted = ?", courseIDs, false).
			Count(&totalEnrollments)
		database.Database.Db.Model(&courseModels.Enrollment{}).
			Where("course_id IN ? AND is_deleted = ? AND status = ?", courseIDs, false, courseModels.EnrollmentCompleted).
			Count(&completedEnrollments)
		database.Database.Db.Model(&courseModels.Certificate{}).
			Where("course_id IN ?", courseIDs).
			Count(&totalCertificates)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_courses":         len(courseIDs),
		"total_enrollments":     totalEnrollments,
		"completed_enrollments": completedEnrollments,
		"certificates_issued":   totalCertificates,
	})
}
