package course

import "gorm.io/gorm"

// Course represents a published or draft course in the catalog
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Description  string `json:"description" gorm:"type:text"`
	Category     string `json:"category"`
	Level        string `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Price        int64  `json:"price" gorm:"default:0"`          // smallest currency unit; 0 means free
	AuthorID     uint   `json:"author_id" gorm:"index;not null"`
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}
