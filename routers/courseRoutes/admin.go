package courseRoutes

import (
	controllers "easylearn/controllers/course"
	"easylearn/middleware"
	validators "easylearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up instructor and admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("course:create"), validators.CreateCourseAdmin(), controllers.CreateCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("course:update"), controllers.GetInstructorCourses)
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("course:update"), validators.UpdateCourseAdmin(), controllers.UpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("course:update"), validators.CourseID(), controllers.DeleteCourse)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("course:publish"), validators.PublishCourse(), controllers.PublishCourse)

	// Curriculum management
	adminGroup.Post("/:id/chapter", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("curriculum:manage"), validators.CreateChapter(), controllers.CreateChapter)
	adminGroup.Post("/:course_id/chapter/:chapter_id/lecture", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("curriculum:manage"), validators.CreateLecture(), controllers.CreateLecture)
	adminGroup.Post("/:course_id/lecture/:lecture_id/video", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("curriculum:manage"), validators.CourseIDParam(), validators.LectureID(), controllers.UploadLectureVideo)
	adminGroup.Delete("/:course_id/lecture/:lecture_id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("curriculum:manage"), validators.CourseIDParam(), validators.LectureID(), controllers.DeleteLecture)
	adminGroup.Get("/:id/curriculum", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("curriculum:manage"), validators.CourseID(), controllers.GetCourseCurriculum)

	// Enrollment and progress tracking
	adminGroup.Get("/:id/enrollments", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("dashboard:view"), validators.CourseID(), controllers.GetCourseEnrollments)

	studentGroup := app.Group("/admin/student")
	studentGroup.Get("/:user_id/course/:course_id/progress", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("dashboard:view"), validators.StudentProgress(), controllers.GetStudentProgress)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("dashboard:view"), controllers.GetDashboardStats)
}
