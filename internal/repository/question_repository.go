package repository

import (
	"github.com/mockview/practice-api/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	// FindActiveByID returns gorm.ErrRecordNotFound for inactive questions
	// as well as absent ones.
	FindActiveByID(id uint) (*model.Question, error)
	// FindActive filters the active pool by category membership (OR across
	// ids) and difficulty membership (OR across levels). Order is ascending
	// id, so repeated calls over an unchanged pool return the same sequence.
	FindActive(categoryIDs []uint, difficulties []string, limit int) ([]model.Question, error)
	FindAll(categoryID *uint, difficulty *string, active *bool) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindActiveByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.Preload("Categories").
		Where("is_active = ?", true).
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindActive(categoryIDs []uint, difficulties []string, limit int) ([]model.Question, error) {
	query := r.db.Model(&model.Question{}).
		Where("questions.is_active = ?", true)

	if len(categoryIDs) > 0 {
		query = query.
			Joins("JOIN question_categories qc ON qc.question_id = questions.id").
			Where("qc.category_id IN ?", categoryIDs).
			Distinct("questions.*")
	}
	if len(difficulties) > 0 {
		query = query.Where("questions.difficulty IN ?", difficulties)
	}

	query = query.Order("questions.id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var questions []model.Question
	err := query.Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindAll(categoryID *uint, difficulty *string, active *bool) ([]model.Question, error) {
	query := r.db.Model(&model.Question{}).Preload("Categories")

	if categoryID != nil {
		query = query.
			Joins("JOIN question_categories qc ON qc.question_id = questions.id").
			Where("qc.category_id = ?", *categoryID)
	}
	if difficulty != nil {
		query = query.Where("questions.difficulty = ?", *difficulty)
	}
	if active != nil {
		query = query.Where("questions.is_active = ?", *active)
	}

	var questions []model.Question
	err := query.Order("questions.id ASC").Find(&questions).Error
	return questions, err
}
