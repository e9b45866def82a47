package dto

import "time"

// QuestionCreateDTO is for staff to add a question to the bank. Categories
// are referenced by name and created on first use.
type QuestionCreateDTO struct {
	Title        string   `json:"title" binding:"required"`
	Content      string   `json:"content" binding:"required"`
	SampleAnswer *string  `json:"sample_answer"`
	Difficulty   string   `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Categories   []string `json:"categories" binding:"required,min=1,dive,required"`
	IsActive     *bool    `json:"is_active"`
}

// QuestionAdminDTO is the admin-facing question projection.
type QuestionAdminDTO struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	SampleAnswer *string   `json:"sample_answer,omitempty"`
	Difficulty   string    `json:"difficulty"`
	IsActive     bool      `json:"is_active"`
	Categories   []string  `json:"categories"`
	CreatedAt    time.Time `json:"created_at"`
}
