package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Answer is one question slot within a session. Slots are pre-allocated when
// the session is created; OrderIndex is assigned once from the selection
// order and never renumbered. Score and Feedback are written together in a
// single transaction, so a reader never observes one without the other.
type Answer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SessionID  uint      `json:"session_id" gorm:"not null;index;uniqueIndex:uidx_answers_session_order"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	OrderIndex int       `json:"order_index" gorm:"not null;uniqueIndex:uidx_answers_session_order"`
	UserAnswer *string   `json:"user_answer,omitempty" gorm:"type:text"`
	Score      *float64  `json:"score,omitempty"`
	Feedback   *Feedback `json:"feedback,omitempty" gorm:"type:jsonb"`
	// RawScoring keeps the provider's verbatim payload for manual diagnosis
	// when a response decodes but looks wrong.
	RawScoring datatypes.JSON `json:"-"`
	AnsweredAt *time.Time     `json:"answered_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Answer) Scored() bool {
	return a.Score != nil
}
