package course

import "gorm.io/gorm"

// Chapter represents an ordered section within a course
type Chapter struct {
	gorm.Model
	CourseID   uint      `json:"course_id" gorm:"index;not null"`
	Title      string    `json:"title"`
	OrderIndex int       `json:"order_index" gorm:"default:0"`
	Lectures   []Lecture `json:"lectures" gorm:"foreignKey:ChapterID"`
	IsDeleted  bool      `gorm:"default:false"`
}

// Lecture is the smallest trackable content unit within a chapter.
// Duration is stored as a numeric string in minutes; legacy content carries
// blank or malformed values, so readers must coerce with fallback to zero.
type Lecture struct {
	gorm.Model
	ChapterID     uint   `json:"chapter_id" gorm:"index;not null"`
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	Title         string `json:"title"`
	Duration      string `json:"duration" gorm:"default:'0'"` // minutes, numeric string
	VideoURL      string `json:"video_url"`
	IsFreePreview bool   `json:"is_free_preview" gorm:"default:false"`
	OrderIndex    int    `json:"order_index" gorm:"default:0"`
	IsDeleted     bool   `gorm:"default:false"`
}
