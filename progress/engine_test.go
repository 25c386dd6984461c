package progress

import (
	"fmt"
	"testing"
	"time"

	"easylearn/database"
	courseModels "easylearn/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(db))
	return db
}

// seedCourse creates a published two-chapter course with one lecture each:
// 5 minutes and 10 minutes.
func seedCourse(t *testing.T, db *gorm.DB) (courseModels.Course, []courseModels.Lecture) {
	t.Helper()

	course := courseModels.Course{
		Title:       "Intro to Backend Development",
		Category:    "Programming",
		Level:       "BEGINNER",
		AuthorID:    1,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	ch1 := courseModels.Chapter{CourseID: course.ID, Title: "Getting Started", OrderIndex: 1}
	ch2 := courseModels.Chapter{CourseID: course.ID, Title: "Going Deeper", OrderIndex: 2}
	require.NoError(t, db.Create(&ch1).Error)
	require.NoError(t, db.Create(&ch2).Error)

	lec1 := courseModels.Lecture{ChapterID: ch1.ID, CourseID: course.ID, Title: "Welcome", Duration: "5", OrderIndex: 1}
	lec2 := courseModels.Lecture{ChapterID: ch2.ID, CourseID: course.ID, Title: "First Steps", Duration: "10", OrderIndex: 1}
	require.NoError(t, db.Create(&lec1).Error)
	require.NoError(t, db.Create(&lec2).Error)

	return course, []courseModels.Lecture{lec1, lec2}
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	require.NoError(t, db.Create(&courseModels.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     courseModels.EnrollmentActive,
		EnrolledAt: time.Now(),
	}).Error)
}

func TestRecordLessonProgressPartialCompletion(t *testing.T) {
	db := setupTestDB(t)
	course, lectures := seedCourse(t, db)
	enroll(t, db, 42, course.ID)

	engine := NewGormEngine(db)

	result, err := engine.RecordLessonProgress(42, course.ID, lectures[0].ID, 300, true)
	require.NoError(t, err)

	assert.Len(t, result.Progress, 1)
	assert.Equal(t, 300.0, result.CourseProgress.WatchedDuration)
	assert.Equal(t, 900.0, result.CourseProgress.TotalDuration)
	assert.Equal(t, 50.0, result.CourseProgress.PercentageCompleted)
	assert.Equal(t, StatusStarted, result.CourseProgress.Status)
	assert.False(t, result.IsCourseCompleted)
	assert.False(t, result.JustCompleted)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 42, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestRecordLessonProgressCourseCompletion(t *testing.T) {
	db := setupTestDB(t)
	course, lectures := seedCourse(t, db)
	enroll(t, db, 42, course.ID)

	engine := NewGormEngine(db)

	_, err := engine.RecordLessonProgress(42, course.ID, lectures[0].ID, 300, true)
	require.NoError(t, err)

	result, err := engine.RecordLessonProgress(42, course.ID, lectures[1].ID, 600, true)
	require.NoError(t, err)

	assert.Len(t, result.Progress, 2)
	assert.Equal(t, 900.0, result.CourseProgress.WatchedDuration)
	assert.Equal(t, 100.0, result.CourseProgress.PercentageCompleted)
	assert.Equal(t, StatusCompleted, result.CourseProgress.Status)
	assert.True(t, result.IsCourseCompleted)
	assert.True(t, result.JustCompleted)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 42, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)
}

func TestRecordLessonProgressReplayIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	course, lectures := seedCourse(t, db)
	enroll(t, db, 42, course.ID)

	engine := NewGormEngine(db)

	_, err := engine.RecordLessonProgress(42, course.ID, lectures[0].ID, 300, true)
	require.NoError(t, err)
	_, err = engine.RecordLessonProgress(42, course.ID, lectures[1].ID, 600, true)
	require.NoError(t, err)

	// Replay the final event
	result, err := engine.RecordLessonProgress(42, course.ID, lectures[1].ID, 600, true)
	require.NoError(t, err)

	assert.Len(t, result.Progress, 2)
	assert.Equal(t, 900.0, result.CourseProgress.WatchedDuration)
	assert.True(t, result.IsCourseCompleted)
	assert.False(t, result.JustCompleted)

	var count int64
	db.Model(&courseModels.LessonProgress{}).Where("user_id = ? AND course_id = ?", 42, course.ID).Count(&count)
	assert.Equal(t, int64(2), count)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 42, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
}

func TestRecordLessonProgressUpdatesExistingRow(t *testing.T) {
	db := setupTestDB(t)
	course, lectures := seedCourse(t, db)
	enroll(t, db, 42, course.ID)

	engine := NewGormEngine(db)

	_, err := engine.RecordLessonProgress(42, course.ID, lectures[0].ID, 120, false)
	require.NoError(t, err)

	result, err := engine.RecordLessonProgress(42, course.ID, lectures[0].ID, 290, true)
	require.NoError(t, err)

	require.Len(t, result.Progress, 1)
	assert.Equal(t, 290.0, result.Progress[0].Progress)
	assert.True(t, result.Progress[0].Completed)
	assert.Equal(t, 50.0, result.CourseProgress.PercentageCompleted)
}

func TestRecordLessonProgressUnknownCourse(t *testing.T) {
	db := setupTestDB(t)

	engine := NewGormEngine(db)

	_, err := engine.RecordLessonProgress(42, 9999, 1, 10, false)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	var count int64
	db.Model(&courseModels.LessonProgress{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRecordLessonProgressLectureFromOtherCourse(t *testing.T) {
	db := setupTestDB(t)
	course, _ := seedCourse(t, db)
	_, otherLectures := seedCourse(t, db)
	enroll(t, db, 42, course.ID)

	engine := NewGormEngine(db)

	_, err := engine.RecordLessonProgress(42, course.ID, otherLectures[0].ID, 10, false)
	assert.ErrorIs(t, err, ErrLessonNotInCourse)
}

func TestRecordLessonProgressNotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	course, lectures := seedCourse(t, db)

	engine := NewGormEngine(db)

	_, err := engine.RecordLessonProgress(42, course.ID, lectures[0].ID, 10, false)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestRecordLessonProgressClampsNegativeSeconds(t *testing.T) {
	db := setupTestDB(t)
	course, lectures := seedCourse(t, db)
	enroll(t, db, 42, course.ID)

	engine := NewGormEngine(db)

	result, err := engine.RecordLessonProgress(42, course.ID, lectures[0].ID, -50, false)
	require.NoError(t, err)

	require.Len(t, result.Progress, 1)
	assert.Equal(t, 0.0, result.Progress[0].Progress)
	assert.Equal(t, 0.0, result.CourseProgress.WatchedDuration)
}

func TestRecordLessonProgressMalformedDurationCountsZero(t *testing.T) {
	db := setupTestDB(t)
	course, lectures := seedCourse(t, db)
	enroll(t, db, 42, course.ID)

	// Legacy content sometimes carries non-numeric durations
	require.NoError(t, db.Model(&courseModels.Lecture{}).Where("id = ?", lectures[1].ID).Update("duration", "approx 10").Error)

	engine := NewGormEngine(db)

	result, err := engine.RecordLessonProgress(42, course.ID, lectures[0].ID, 100, true)
	require.NoError(t, err)

	assert.Equal(t, 300.0, result.CourseProgress.TotalDuration)
	assert.Equal(t, 50.0, result.CourseProgress.PercentageCompleted)
}

func TestCompletionIsMonotonic(t *testing.T) {
	db := setupTestDB(t)
	course, lectures := seedCourse(t, db)
	enroll(t, db, 42, course.ID)

	engine := NewGormEngine(db)

	_, err := engine.RecordLessonProgress(42, course.ID, lectures[0].ID, 300, true)
	require.NoError(t, err)
	result, err := engine.RecordLessonProgress(42, course.ID, lectures[1].ID, 600, true)
	require.NoError(t, err)
	require.True(t, result.IsCourseCompleted)

	// Un-completing a lesson drops the aggregate but the enrollment stays
	// completed
	result, err = engine.RecordLessonProgress(42, course.ID, lectures[1].ID, 600, false)
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.CourseProgress.PercentageCompleted)
	assert.Equal(t, StatusStarted, result.CourseProgress.Status)
	assert.False(t, result.IsCourseCompleted)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 42, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
}

func TestGetUserProgress(t *testing.T) {
	db := setupTestDB(t)
	course, lectures := seedCourse(t, db)
	enroll(t, db, 42, course.ID)

	engine := NewGormEngine(db)

	_, err := engine.RecordLessonProgress(42, course.ID, lectures[0].ID, 300, true)
	require.NoError(t, err)

	result, err := engine.GetUserProgress(42, course.ID)
	require.NoError(t, err)

	assert.Len(t, result.Progress, 1)
	assert.Equal(t, 300.0, result.CourseProgress.WatchedDuration)
	assert.Equal(t, 900.0, result.CourseProgress.TotalDuration)
	assert.Equal(t, 50.0, result.CourseProgress.PercentageCompleted)
	assert.Equal(t, StatusStarted, result.CourseProgress.Status)
}

func TestGetUserProgressRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	course, _ := seedCourse(t, db)

	engine := NewGormEngine(db)

	_, err := engine.GetUserProgress(42, course.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestGetUserProgressUnknownCourse(t *testing.T) {
	db := setupTestDB(t)

	engine := NewGormEngine(db)

	_, err := engine.GetUserProgress(42, 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestDurationSeconds(t *testing.T) {
	assert.Equal(t, 300.0, durationSeconds("5"))
	assert.Equal(t, 90.0, durationSeconds("1.5"))
	assert.Equal(t, 0.0, durationSeconds(""))
	assert.Equal(t, 0.0, durationSeconds("abc"))
	assert.Equal(t, 0.0, durationSeconds("-3"))
}
