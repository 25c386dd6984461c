package progress

import (
	"errors"
	"time"

	courseModels "easylearn/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCurriculumReader loads curricula from the relational store.
type GormCurriculumReader struct {
	db *gorm.DB
}

func NewGormCurriculumReader(db *gorm.DB) *GormCurriculumReader {
	return &GormCurriculumReader{db: db}
}

func (r *GormCurriculumReader) GetCourseWithLectures(courseID uint) (*Curriculum, error) {
	var c courseModels.Course
	err := r.db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var chapters []courseModels.Chapter
	err = r.db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").
		Preload("Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Find(&chapters).Error
	if err != nil {
		return nil, err
	}

	return &Curriculum{Course: &c, Chapters: chapters}, nil
}

// GormEnrollmentStore reads and upserts enrollment rows.
type GormEnrollmentStore struct {
	db *gorm.DB
}

func NewGormEnrollmentStore(db *gorm.DB) *GormEnrollmentStore {
	return &GormEnrollmentStore{db: db}
}

func (s *GormEnrollmentStore) Find(userID, courseID uint) (*courseModels.Enrollment, error) {
	var e courseModels.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// MarkCompleted flips the enrollment status to completed. The upsert creates
// the row when it is missing even though the engine's precondition means it
// should already exist; repeated calls write the same target value, which is
// what makes concurrent aggregate recomputations safe without locking.
func (s *GormEnrollmentStore) MarkCompleted(userID, courseID uint, completedAt time.Time) error {
	e := courseModels.Enrollment{
		UserID:      userID,
		CourseID:    courseID,
		Status:      courseModels.EnrollmentCompleted,
		EnrolledAt:  completedAt,
		CompletedAt: &completedAt,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":       courseModels.EnrollmentCompleted,
			"completed_at": completedAt,
			"updated_at":   completedAt,
		}),
	}).Create(&e).Error
}

// GormStore persists per-lesson progress rows.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Upsert is last-write-wins on progress/completed/last_updated; concurrent
// writers for the same triple are resolved by single-row write atomicity,
// no merge of watched seconds is attempted.
func (s *GormStore) Upsert(rec *courseModels.LessonProgress) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "lecture_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"progress":     rec.Progress,
			"completed":    rec.Completed,
			"last_updated": rec.LastUpdated,
			"updated_at":   rec.LastUpdated,
		}),
	}).Create(rec).Error
}

func (s *GormStore) ListForCourse(userID, courseID uint) ([]courseModels.LessonProgress, error) {
	var rows []courseModels.LessonProgress
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("lecture_id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// NewGormEngine wires an Engine against a single gorm database handle.
func NewGormEngine(db *gorm.DB) *Engine {
	return NewEngine(
		NewGormCurriculumReader(db),
		NewGormEnrollmentStore(db),
		NewGormStore(db),
	)
}
