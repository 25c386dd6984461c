package progressController

import (
	"bytes"
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
	courseModels "easylearn/models/course"
	"easylearn/progress"
	progressValidators "easylearn/validators/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	token string
}

func setupTestApp(t *testing.T) *testEnv {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	ctrl := New(progress.NewGormEngine(db))

	app := fiber.New()
	app.Post("/progress", middleware.JWTMiddleware, progressValidators.SaveProgress(), ctrl.SaveProgress)
	app.Get("/progress/:userId/:courseId", middleware.JWTMiddleware, progressValidators.GetProgress(), ctrl.GetProgress)

	token, err := middleware.GenerateJWT(42, "Test Student", "USER", "student@example.com")
	require.NoError(t, err)

	return &testEnv{app: app, db: db, token: token}
}

func (env *testEnv) seedEnrolledCourse(t *testing.T) (courseModels.Course, []courseModels.Lecture) {
	t.Helper()

	course := courseModels.Course{
		Title:       "Intro to Backend Development",
		Category:    "Programming",
		Level:       "BEGINNER",
		AuthorID:    1,
		IsPublished: true,
	}
	require.NoError(t, env.db.Create(&course).Error)

	chapter := courseModels.Chapter{CourseID: course.ID, Title: "Getting Started", OrderIndex: 1}
	require.NoError(t, env.db.Create(&chapter).Error)

	lec1 := courseModels.Lecture{ChapterID: chapter.ID, CourseID: course.ID, Title: "Welcome", Duration: "5", OrderIndex: 1}
	lec2 := courseModels.Lecture{ChapterID: chapter.ID, CourseID: course.ID, Title: "First Steps", Duration: "10", OrderIndex: 2}
	require.NoError(t, env.db.Create(&lec1).Error)
	require.NoError(t, env.db.Create(&lec2).Error)

	require.NoError(t, env.db.Create(&courseModels.Enrollment{
		UserID:     42,
		CourseID:   course.ID,
		Status:     courseModels.EnrollmentActive,
		EnrolledAt: time.Now(),
	}).Error)

	return course, []courseModels.Lecture{lec1, lec2}
}

func (env *testEnv) postProgress(t *testing.T, body map[string]interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/progress", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.token)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope
}

func TestSaveProgressEndpoint(t *testing.T) {
	env := setupTestApp(t)
	course, lectures := env.seedEnrolledCourse(t)

	resp := env.postProgress(t, map[string]interface{}{
		"userId":    42,
		"courseId":  course.ID,
		"lessonId":  lectures[0].ID,
		"progress":  300,
		"completed": true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, true, envelope["status"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, false, data["isCourseCompleted"])

	courseProgress := data["courseProgress"].(map[string]interface{})
	assert.Equal(t, 300.0, courseProgress["watchedDuration"])
	assert.Equal(t, 900.0, courseProgress["totalDuration"])
	assert.Equal(t, 50.0, courseProgress["percentageCompleted"])
	assert.Equal(t, "started", courseProgress["status"])
}

func TestSaveProgressCompletesCourse(t *testing.T) {
	env := setupTestApp(t)
	course, lectures := env.seedEnrolledCourse(t)

	resp := env.postProgress(t, map[string]interface{}{
		"userId":    42,
		"courseId":  course.ID,
		"lessonId":  lectures[0].ID,
		"progress":  300,
		"completed": true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.postProgress(t, map[string]interface{}{
		"userId":    42,
		"courseId":  course.ID,
		"lessonId":  lectures[1].ID,
		"progress":  600,
		"completed": true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, true, data["isCourseCompleted"])

	var enrollment courseModels.Enrollment
	require.NoError(t, env.db.Where("user_id = ? AND course_id = ?", 42, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
}

func TestSaveProgressStringSecondsAreCoerced(t *testing.T) {
	env := setupTestApp(t)
	course, lectures := env.seedEnrolledCourse(t)

	resp := env.postProgress(t, map[string]interface{}{
		"userId":    42,
		"courseId":  course.ID,
		"lessonId":  lectures[0].ID,
		"progress":  "120.5",
		"completed": "yes",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	courseProgress := data["courseProgress"].(map[string]interface{})
	assert.Equal(t, 120.5, courseProgress["watchedDuration"])
}

func TestSaveProgressUnknownCourse(t *testing.T) {
	env := setupTestApp(t)

	resp := env.postProgress(t, map[string]interface{}{
		"userId":    42,
		"courseId":  9999,
		"lessonId":  1,
		"progress":  10,
		"completed": false,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveProgressUnknownLesson(t *testing.T) {
	env := setupTestApp(t)
	course, _ := env.seedEnrolledCourse(t)

	resp := env.postProgress(t, map[string]interface{}{
		"userId":    42,
		"courseId":  course.ID,
		"lessonId":  9999,
		"progress":  10,
		"completed": false,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveProgressNotEnrolled(t *testing.T) {
	env := setupTestApp(t)
	course, lectures := env.seedEnrolledCourse(t)

	// A different user with no enrollment
	resp := env.postProgress(t, map[string]interface{}{
		"userId":    77,
		"courseId":  course.ID,
		"lessonId":  lectures[0].ID,
		"progress":  10,
		"completed": false,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSaveProgressMissingIdentifiers(t *testing.T) {
	env := setupTestApp(t)

	resp := env.postProgress(t, map[string]interface{}{
		"progress":  10,
		"completed": false,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveProgressRequiresAuth(t *testing.T) {
	env := setupTestApp(t)

	payload, _ := json.Marshal(map[string]interface{}{
		"userId": 42, "courseId": 1, "lessonId": 1,
	})
	req := httptest.NewRequest(http.MethodPost, "/progress", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetProgressEndpoint(t *testing.T) {
	env := setupTestApp(t)
	course, lectures := env.seedEnrolledCourse(t)

	resp := env.postProgress(t, map[string]interface{}{
		"userId":    42,
		"courseId":  course.ID,
		"lessonId":  lectures[0].ID,
		"progress":  300,
		"completed": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/progress/42/%d", course.ID), nil)
	req.Header.Set("Authorization", "Bearer "+env.token)

	getResp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	envelope := decodeEnvelope(t, getResp)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, false, data["isCourseCompleted"])

	rows := data["progress"].([]interface{})
	assert.Len(t, rows, 1)

	courseProgress := data["courseProgress"].(map[string]interface{})
	assert.Equal(t, 50.0, courseProgress["percentageCompleted"])
}

func TestGetProgressNotEnrolled(t *testing.T) {
	env := setupTestApp(t)
	course, _ := env.seedEnrolledCourse(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/progress/77/%d", course.ID), nil)
	req.Header.Set("Authorization", "Bearer "+env.token)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetProgressInvalidParams(t *testing.T) {
	env := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/progress/abc/xyz", nil)
	req.Header.Set("Authorization", "Bearer "+env.token)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
