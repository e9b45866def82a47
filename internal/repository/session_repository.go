package repository

import (
	"github.com/mockview/practice-api/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	// Create persists the session together with its pre-allocated answer
	// slots in one insert. Runs inside the given transaction handle.
	Create(tx *gorm.DB, session *model.Session) error
	// FindByIDAndUser returns the bare session row. Absence and foreign
	// ownership are both gorm.ErrRecordNotFound.
	FindByIDAndUser(id, userID uint) (*model.Session, error)
	// FindByIDAndUserWithDetails preloads answers in order-index order with
	// their questions and categories resolved.
	FindByIDAndUserWithDetails(id, userID uint) (*model.Session, error)
	// UpdateCompletion writes status, overall score and completion time in
	// one statement.
	UpdateCompletion(tx *gorm.DB, session *model.Session) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(tx *gorm.DB, session *model.Session) error {
	// GORM creates the associated Answers alongside the Session.
	return tx.Create(session).Error
}

func (r *sessionRepository) FindByIDAndUser(id, userID uint) (*model.Session, error) {
	var session model.Session
	err := r.db.Where("user_id = ?", userID).First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByIDAndUserWithDetails(id, userID uint) (*model.Session, error) {
	var session model.Session
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.order_index ASC")
		}).
		Preload("Answers.Question").
		Preload("Answers.Question.Categories").
		Where("user_id = ?", userID).
		First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) UpdateCompletion(tx *gorm.DB, session *model.Session) error {
	return tx.Model(&model.Session{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"status":        session.Status,
			"overall_score": session.OverallScore,
			"completed_at":  session.CompletedAt,
		}).Error
}
