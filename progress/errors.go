package progress

import "errors"

// Precondition failures surfaced by the engine. Callers map these to HTTP
// statuses; ErrLessonNotInCourse indicates a stale or forged lecture id and
// must not be retried.
var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrLessonNotInCourse = errors.New("lesson not found in course")
	ErrNotEnrolled       = errors.New("user not enrolled in course")
)
