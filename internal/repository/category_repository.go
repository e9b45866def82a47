package repository

import (
	"github.com/mockview/practice-api/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	// FirstOrCreateByName resolves a category by name, creating it on first
	// use.
	FirstOrCreateByName(name string) (*model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FirstOrCreateByName(name string) (*model.Category, error) {
	var category model.Category
	err := r.db.Where(model.Category{Name: name}).FirstOrCreate(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}
