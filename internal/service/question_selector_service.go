package service

import (
	"errors"

	"github.com/mockview/practice-api/internal/apperror"
	"github.com/mockview/practice-api/internal/model"
	"github.com/mockview/practice-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionSelectorService chooses questions for new sessions out of the
// active question pool.
type QuestionSelectorService interface {
	// SelectForPractice validates that the question exists and is active.
	SelectForPractice(questionID uint) (*model.Question, error)
	// SelectForInterview returns exactly count distinct active questions
	// matching the filters, in a stable order. The whole request fails when
	// the pool cannot satisfy it; no partial selection.
	SelectForInterview(categoryIDs []uint, difficulties []string, count int) ([]model.Question, error)
}

type questionSelectorService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionSelectorService(questionRepo repository.QuestionRepository) QuestionSelectorService {
	return &questionSelectorService{questionRepo: questionRepo}
}

func (s *questionSelectorService) SelectForPractice(questionID uint) (*model.Question, error) {
	question, err := s.questionRepo.FindActiveByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("question %d not found", questionID)
		}
		return nil, apperror.Internal(err, "looking up question %d", questionID)
	}
	return question, nil
}

func (s *questionSelectorService) SelectForInterview(categoryIDs []uint, difficulties []string, count int) ([]model.Question, error) {
	questions, err := s.questionRepo.FindActive(categoryIDs, difficulties, count)
	if err != nil {
		return nil, apperror.Internal(err, "querying question pool")
	}
	if len(questions) < count {
		log.Warn().
			Int("requested", count).
			Int("matched", len(questions)).
			Interface("categoryIDs", categoryIDs).
			Strs("difficulties", difficulties).
			Msg("Question pool cannot satisfy interview request")
		return nil, apperror.InsufficientData(
			"only %d active questions match the filters, %d requested", len(questions), count)
	}
	return questions, nil
}
