package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"easylearn/config"
	"easylearn/database"
	"easylearn/middleware"
	"easylearn/models"
	courseModels "easylearn/models/course"
	validators "easylearn/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCourseTestApp(t *testing.T) (*fiber.App, *gorm.DB, string) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	require.NoError(t, db.Create(&models.User{
		Email:    "student@example.com",
		Name:     "Test Student",
		Role:     "USER",
		Password: "not-used",
	}).Error)

	app := fiber.New()
	app.Get("/course/list", validators.CourseList(), GetAllCourses)
	app.Get("/course/:id", validators.CourseID(), GetCourseDetails)
	app.Post("/course/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), EnrollInCourse)

	token, err := middleware.GenerateJWT(1, "Test Student", "USER", "student@example.com")
	require.NoError(t, err)

	return app, db, token
}

func seedPublishedCourse(t *testing.T, db *gorm.DB, price int64) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:       "Go for Web Developers",
		Category:    "Programming",
		Level:       "BEGINNER",
		Price:       price,
		AuthorID:    1,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	chapter := courseModels.Chapter{CourseID: course.ID, Title: "Basics", OrderIndex: 1}
	require.NoError(t, db.Create(&chapter).Error)

	require.NoError(t, db.Create(&courseModels.Lecture{
		ChapterID: chapter.ID, CourseID: course.ID, Title: "Welcome",
		Duration: "5", VideoURL: "/uploads/videos/welcome.mp4", IsFreePreview: true, OrderIndex: 1,
	}).Error)
	require.NoError(t, db.Create(&courseModels.Lecture{
		ChapterID: chapter.ID, CourseID: course.ID, Title: "Setup",
		Duration: "10", VideoURL: "/uploads/videos/setup.mp4", OrderIndex: 2,
	}).Error)

	return course
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope
}

func TestCatalogListsOnlyPublishedCourses(t *testing.T) {
	app, db, _ := setupCourseTestApp(t)
	seedPublishedCourse(t, db, 0)

	require.NoError(t, db.Create(&courseModels.Course{
		Title: "Unreleased Draft", Category: "Programming", AuthorID: 1, IsPublished: false,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/course/list", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeBody(t, resp)
	data := envelope["data"].(map[string]interface{})
	courses := data["courses"].([]interface{})
	assert.Len(t, courses, 1)
}

func TestCourseDetailsHidesPaidVideosForGuests(t *testing.T) {
	app, db, _ := setupCourseTestApp(t)
	course := seedPublishedCourse(t, db, 4999)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/course/%d", course.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeBody(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_enrolled"])

	chapters := data["chapters"].([]interface{})
	require.Len(t, chapters, 1)
	lectures := chapters[0].(map[string]interface{})["lectures"].([]interface{})
	require.Len(t, lectures, 2)

	preview := lectures[0].(map[string]interface{})
	locked := lectures[1].(map[string]interface{})
	assert.NotEmpty(t, preview["video_url"])
	assert.Empty(t, locked["video_url"])
}

func TestEnrollInFreeCourse(t *testing.T) {
	app, db, token := setupCourseTestApp(t)
	course := seedPublishedCourse(t, db, 0)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	assert.WithinDuration(t, time.Now(), enrollment.EnrolledAt, 5*time.Second)
}

func TestEnrollTwiceReturnsConflict(t *testing.T) {
	app, db, token := setupCourseTestApp(t)
	course := seedPublishedCourse(t, db, 0)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestEnrollPaidCourseRequiresCheckout(t *testing.T) {
	app, db, token := setupCourseTestApp(t)
	course := seedPublishedCourse(t, db, 4999)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
}
