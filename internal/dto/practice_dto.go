package dto

import "time"

// StartSingleSessionDTO starts a single-question practice session.
type StartSingleSessionDTO struct {
	UserID     uint `json:"user_id" binding:"required"` // Temporary - will come from auth token
	QuestionID uint `json:"question_id" binding:"required"`
}

// StartFullSessionDTO starts a full mock interview assembled from the
// question bank by category/difficulty filters.
type StartFullSessionDTO struct {
	UserID            uint     `json:"user_id" binding:"required"`
	CategoryIDs       []uint   `json:"category_ids"`
	DifficultyLevels  []string `json:"difficulty_levels"`
	NumberOfQuestions int      `json:"number_of_questions" binding:"required,min=1,max=10"`
}

// SubmitAnswerDTO submits the user's text for one question slot of a full
// interview session.
type SubmitAnswerDTO struct {
	UserID     uint   `json:"user_id" binding:"required"`
	QuestionID uint   `json:"question_id" binding:"required"`
	UserAnswer string `json:"user_answer" binding:"required"`
}

// SubmitSingleDTO submits the answer of a single-question session.
type SubmitSingleDTO struct {
	UserID     uint   `json:"user_id" binding:"required"`
	UserAnswer string `json:"user_answer" binding:"required"`
}

// CompleteSessionDTO finalizes a session explicitly.
type CompleteSessionDTO struct {
	UserID uint `json:"user_id" binding:"required"`
}

// FeedbackDTO mirrors the stored feedback contract.
type FeedbackDTO struct {
	Overall      string   `json:"overall"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// QuestionResponseDTO is the read-only question projection shown to users.
type QuestionResponseDTO struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Difficulty   string   `json:"difficulty"`
	Categories   []string `json:"categories,omitempty"`
	SampleAnswer *string  `json:"sample_answer,omitempty"`
}

// AnswerResponseDTO is one slot within a session detail view.
type AnswerResponseDTO struct {
	ID         uint                `json:"id"`
	QuestionID uint                `json:"question_id"`
	Question   QuestionResponseDTO `json:"question"`
	OrderIndex int                 `json:"order_index"`
	UserAnswer *string             `json:"user_answer,omitempty"`
	Score      *float64            `json:"score,omitempty"`
	Feedback   *FeedbackDTO        `json:"feedback,omitempty"`
	AnsweredAt *time.Time          `json:"answered_at,omitempty"`
}

// SessionDetailDTO is the full session view, answers in order-index order.
type SessionDetailDTO struct {
	ID            uint                `json:"id"`
	UserID        uint                `json:"user_id"`
	Kind          string              `json:"kind"`
	QuestionCount int                 `json:"question_count"`
	Status        string              `json:"status"`
	OverallScore  *float64            `json:"overall_score,omitempty"`
	StartedAt     time.Time           `json:"started_at"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	Answers       []AnswerResponseDTO `json:"answers"`
}

// AnswerResultDTO is returned from a submission once scoring succeeded.
type AnswerResultDTO struct {
	AnswerID uint        `json:"answer_id"`
	Score    float64     `json:"score"`
	Feedback FeedbackDTO `json:"feedback"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Kind    string   `json:"kind,omitempty"`
	Details []string `json:"details,omitempty"`
}
