package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress is the per-lesson watch state for a (user, course, lecture)
// triple. Rows are upserted on every watch event and never deleted; replaying
// an event with the same values leaves the stored state unchanged.
type LessonProgress struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_progress_user_course_lecture;not null"`
	CourseID    uint      `json:"course_id" gorm:"uniqueIndex:idx_progress_user_course_lecture;not null"`
	LectureID   uint      `json:"lecture_id" gorm:"uniqueIndex:idx_progress_user_course_lecture;not null"`
	Progress    float64   `json:"progress" gorm:"default:0"` // seconds watched
	Completed   bool      `json:"completed" gorm:"default:false"`
	LastUpdated time.Time `json:"last_updated"`
}
