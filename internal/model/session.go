package model

import (
	"time"

	"gorm.io/gorm"
)

type SessionKind string

const (
	SessionKindSingle SessionKind = "single"
	SessionKindFull   SessionKind = "full"
)

type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

// Session is one practice attempt: a single pre-selected question or a full
// mock interview assembled from the question bank. OverallScore is set only
// when Status is completed, never before.
type Session struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	Kind          SessionKind    `json:"kind" gorm:"not null"`
	QuestionCount int            `json:"question_count" gorm:"not null"`
	Status        SessionStatus  `json:"status" gorm:"not null;default:'in_progress'"`
	OverallScore  *float64       `json:"overall_score,omitempty"`
	StartedAt     time.Time      `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	Answers       []Answer       `json:"answers,omitempty" gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Session) Completed() bool {
	return s.Status == SessionStatusCompleted
}
