package progress

import (
	"strconv"
	"strings"
	"time"

	courseModels "easylearn/models/course"
)

// Aggregate status values.
const (
	StatusStarted   = "started"
	StatusCompleted = "completed"
)

// Curriculum is the authoritative structure of a course as loaded for a
// learning session: ordered chapters, each with ordered lectures.
type Curriculum struct {
	Course   *courseModels.Course
	Chapters []courseModels.Chapter
}

// CurriculumReader loads a course with its nested chapters and lectures.
// Implementations return (nil, nil) when the course does not exist.
type CurriculumReader interface {
	GetCourseWithLectures(courseID uint) (*Curriculum, error)
}

// EnrollmentStore gates access to a course and records completion.
// Find returns (nil, nil) when no enrollment exists. MarkCompleted upserts
// the enrollment's status to completed; create-if-missing is a defensive
// fallback, not the primary path.
type EnrollmentStore interface {
	Find(userID, courseID uint) (*courseModels.Enrollment, error)
	MarkCompleted(userID, courseID uint, completedAt time.Time) error
}

// Store persists per-lesson progress rows.
type Store interface {
	Upsert(rec *courseModels.LessonProgress) error
	ListForCourse(userID, courseID uint) ([]courseModels.LessonProgress, error)
}

// Aggregate is the computed course-level summary derived from progress rows
// and the curriculum. PercentageCompleted is not rounded; rounding is a
// presentation concern.
type Aggregate struct {
	WatchedDuration     float64 `json:"watchedDuration"`
	PercentageCompleted float64 `json:"percentageCompleted"`
	TotalDuration       float64 `json:"totalDuration"`
	Status              string  `json:"status"`
}

// Result is returned by RecordLessonProgress. IsCourseCompleted reflects the
// aggregate state after the write; JustCompleted is true only on the call
// that transitioned the course into the completed state.
type Result struct {
	Progress          []courseModels.LessonProgress `json:"progress"`
	CourseProgress    Aggregate                     `json:"courseProgress"`
	IsCourseCompleted bool                          `json:"isCourseCompleted"`
	JustCompleted     bool                          `json:"-"`
}

// Engine ingests per-lesson watch events, aggregates them into course-level
// completion, and flips the enrollment to completed. Stores are injected;
// the engine holds no ambient database state.
type Engine struct {
	curriculum  CurriculumReader
	enrollments EnrollmentStore
	store       Store
}

func NewEngine(curriculum CurriculumReader, enrollments EnrollmentStore, store Store) *Engine {
	return &Engine{
		curriculum:  curriculum,
		enrollments: enrollments,
		store:       store,
	}
}

// RecordLessonProgress persists a watch event for one lecture, recomputes the
// course aggregate, and marks the enrollment completed when every lecture is
// done. The upsert is last-write-wins: replaying an identical event produces
// identical stored state. The three steps are not wrapped in a cross-record
// transaction; a failure after the progress write leaves the enrollment
// status to be repaired by the next call, which is safe because
// MarkCompleted is idempotent.
func (e *Engine) RecordLessonProgress(userID, courseID, lectureID uint, watchedSeconds float64, completed bool) (*Result, error) {
	if watchedSeconds < 0 || watchedSeconds != watchedSeconds {
		watchedSeconds = 0
	}

	cur, err := e.curriculum.GetCourseWithLectures(courseID)
	if err != nil {
		return nil, err
	}
	if cur == nil || len(cur.Chapters) == 0 {
		return nil, ErrCourseNotFound
	}

	if !curriculumContains(cur, lectureID) {
		return nil, ErrLessonNotInCourse
	}

	enrollment, err := e.enrollments.Find(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}

	rec := &courseModels.LessonProgress{
		UserID:      userID,
		CourseID:    courseID,
		LectureID:   lectureID,
		Progress:    watchedSeconds,
		Completed:   completed,
		LastUpdated: time.Now(),
	}
	if err := e.store.Upsert(rec); err != nil {
		return nil, err
	}

	rows, err := e.store.ListForCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	agg := computeAggregate(cur, rows)

	result := &Result{
		Progress:          rows,
		CourseProgress:    agg,
		IsCourseCompleted: agg.Status == StatusCompleted,
	}

	if agg.Status == StatusCompleted {
		wasCompleted := enrollment.Status == courseModels.EnrollmentCompleted
		if err := e.enrollments.MarkCompleted(userID, courseID, time.Now()); err != nil {
			return nil, err
		}
		result.JustCompleted = !wasCompleted
	}

	return result, nil
}

// GetUserProgress is the read-only mirror of the aggregate computation.
// Progress is never visible to a non-enrolled caller, even when rows exist
// from a prior enrollment.
func (e *Engine) GetUserProgress(userID, courseID uint) (*Result, error) {
	cur, err := e.curriculum.GetCourseWithLectures(courseID)
	if err != nil {
		return nil, err
	}
	if cur == nil || len(cur.Chapters) == 0 {
		return nil, ErrCourseNotFound
	}

	enrollment, err := e.enrollments.Find(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}

	rows, err := e.store.ListForCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	agg := computeAggregate(cur, rows)

	return &Result{
		Progress:          rows,
		CourseProgress:    agg,
		IsCourseCompleted: agg.Status == StatusCompleted,
	}, nil
}

// curriculumContains walks every chapter/lecture pair. This is the
// correctness gate preventing progress pollution from stale or forged
// lecture ids.
func curriculumContains(cur *Curriculum, lectureID uint) bool {
	for _, ch := range cur.Chapters {
		for _, lec := range ch.Lectures {
			if lec.ID == lectureID {
				return true
			}
		}
	}
	return false
}

func computeAggregate(cur *Curriculum, rows []courseModels.LessonProgress) Aggregate {
	var totalLessons int
	var totalDuration float64
	for _, ch := range cur.Chapters {
		for _, lec := range ch.Lectures {
			totalLessons++
			totalDuration += durationSeconds(lec.Duration)
		}
	}

	var watched float64
	var completedLessons int
	for _, row := range rows {
		// Watched time and completion are tracked independently: a lesson
		// completed early contributes only its recorded seconds.
		watched += row.Progress
		if row.Completed {
			completedLessons++
		}
	}

	agg := Aggregate{
		WatchedDuration: watched,
		TotalDuration:   totalDuration,
		Status:          StatusStarted,
	}
	if totalLessons > 0 {
		agg.PercentageCompleted = float64(completedLessons) / float64(totalLessons) * 100
		if completedLessons == totalLessons {
			agg.Status = StatusCompleted
		}
	}
	return agg
}

// durationSeconds coerces a lecture's duration (numeric string, minutes) to
// seconds. Malformed or missing durations count as zero; existing content
// carries such values and must not fail the aggregate.
func durationSeconds(minutes string) float64 {
	m, err := strconv.ParseFloat(strings.TrimSpace(minutes), 64)
	if err != nil || m < 0 {
		return 0
	}
	return m * 60
}
