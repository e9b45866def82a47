package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question belongs to the question bank. The practice core only ever reads
// questions; mutation happens through the admin surface.
type Question struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `json:"title" gorm:"not null"`
	Content      string         `json:"content" gorm:"type:text;not null"`
	SampleAnswer *string        `json:"sample_answer,omitempty" gorm:"type:text"`
	Difficulty   string         `json:"difficulty" gorm:"not null;index"`
	IsActive     bool           `json:"is_active" gorm:"not null;default:true"`
	Categories   []Category     `json:"categories,omitempty" gorm:"many2many:question_categories"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
