package service

import (
	"github.com/mockview/practice-api/internal/apperror"
	"github.com/mockview/practice-api/internal/dto"
	"github.com/mockview/practice-api/internal/model"
	"github.com/mockview/practice-api/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionBankService is the staff-facing side of the question bank: adding
// questions and browsing the pool. The practice core only reads from it.
type QuestionBankService interface {
	CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error)
	ListQuestions(categoryID *uint, difficulty *string, active *bool) ([]dto.QuestionAdminDTO, error)
}

type questionBankService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
}

func NewQuestionBankService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
) QuestionBankService {
	return &questionBankService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *questionBankService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error) {
	categories := make([]model.Category, 0, len(req.Categories))
	for _, name := range req.Categories {
		category, err := s.categoryRepo.FirstOrCreateByName(name)
		if err != nil {
			return nil, apperror.Internal(err, "resolving category %q", name)
		}
		categories = append(categories, *category)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	question := model.Question{
		Title:        req.Title,
		Content:      req.Content,
		SampleAnswer: req.SampleAnswer,
		Difficulty:   req.Difficulty,
		IsActive:     active,
		Categories:   categories,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create question")
		return nil, apperror.Internal(err, "creating question")
	}

	out := toQuestionAdminDTO(&question)
	return &out, nil
}

func (s *questionBankService) ListQuestions(categoryID *uint, difficulty *string, active *bool) ([]dto.QuestionAdminDTO, error) {
	questions, err := s.questionRepo.FindAll(categoryID, difficulty, active)
	if err != nil {
		return nil, apperror.Internal(err, "listing questions")
	}
	out := make([]dto.QuestionAdminDTO, len(questions))
	for i := range questions {
		out[i] = toQuestionAdminDTO(&questions[i])
	}
	return out, nil
}

func toQuestionAdminDTO(q *model.Question) dto.QuestionAdminDTO {
	names := categoryNames(q.Categories)
	if names == nil {
		names = []string{}
	}
	return dto.QuestionAdminDTO{
		ID:           q.ID,
		Title:        q.Title,
		Content:      q.Content,
		SampleAnswer: q.SampleAnswer,
		Difficulty:   q.Difficulty,
		IsActive:     q.IsActive,
		Categories:   names,
		CreatedAt:    q.CreatedAt,
	}
}
