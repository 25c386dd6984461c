package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment status values. Status is monotonic: active courses move to
// completed and never revert.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
)

// Enrollment grants a user access to a course's content and tracks overall
// completion state. One row per (user, course) pair.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	PaymentID   *uint      `json:"payment_id"` // nil for free enrollments
	Status      string     `json:"status" gorm:"default:'active'"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
