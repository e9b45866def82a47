package repository

import (
	"github.com/mockview/practice-api/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindBySessionAndQuestion(sessionID, questionID uint) (*model.Answer, error)
	FindBySessionAndOrder(sessionID uint, orderIndex int) (*model.Answer, error)
	// FindBySession returns all slots in order-index order. Runs on the
	// given handle so a caller inside a transaction sees its own writes.
	FindBySession(tx *gorm.DB, sessionID uint) ([]model.Answer, error)
	// UpdateSubmission persists the user's text and submission time only;
	// score and feedback are untouched so a failed scoring call leaves the
	// slot resubmittable.
	UpdateSubmission(answer *model.Answer) error
	// UpdateScoring writes score, feedback and the raw provider payload in
	// one statement. Runs inside the given transaction handle.
	UpdateScoring(tx *gorm.DB, answer *model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindBySessionAndQuestion(sessionID, questionID uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.Preload("Question").
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindBySessionAndOrder(sessionID uint, orderIndex int) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.Preload("Question").
		Where("session_id = ? AND order_index = ?", sessionID, orderIndex).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindBySession(tx *gorm.DB, sessionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := tx.Where("session_id = ?", sessionID).
		Order("order_index ASC").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) UpdateSubmission(answer *model.Answer) error {
	return r.db.Model(&model.Answer{}).
		Where("id = ?", answer.ID).
		Updates(map[string]interface{}{
			"user_answer": answer.UserAnswer,
			"answered_at": answer.AnsweredAt,
		}).Error
}

func (r *answerRepository) UpdateScoring(tx *gorm.DB, answer *model.Answer) error {
	return tx.Model(&model.Answer{}).
		Where("id = ?", answer.ID).
		Updates(map[string]interface{}{
			"score":       answer.Score,
			"feedback":    answer.Feedback,
			"raw_scoring": answer.RawScoring,
		}).Error
}
