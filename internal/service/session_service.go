package service

import (
	"errors"

	"github.com/mockview/practice-api/internal/apperror"
	"github.com/mockview/practice-api/internal/dto"
	"github.com/mockview/practice-api/internal/model"
	"github.com/mockview/practice-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MaxInterviewQuestions caps the size of a full mock interview.
const MaxInterviewQuestions = 10

// SessionService owns session creation and retrieval. Sessions start
// in progress with one pre-allocated answer slot per selected question;
// the completion transition belongs to the submission path.
type SessionService interface {
	StartSingleSession(userID, questionID uint) (*dto.SessionDetailDTO, error)
	StartFullSession(userID uint, req dto.StartFullSessionDTO) (*dto.SessionDetailDTO, error)
	GetSession(sessionID, userID uint) (*dto.SessionDetailDTO, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	selector    QuestionSelectorService
	db          *gorm.DB
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	selector QuestionSelectorService,
	db *gorm.DB,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		selector:    selector,
		db:          db,
	}
}

func (s *sessionService) StartSingleSession(userID, questionID uint) (*dto.SessionDetailDTO, error) {
	question, err := s.selector.SelectForPractice(questionID)
	if err != nil {
		return nil, err
	}
	return s.createSession(userID, model.SessionKindSingle, []model.Question{*question})
}

func (s *sessionService) StartFullSession(userID uint, req dto.StartFullSessionDTO) (*dto.SessionDetailDTO, error) {
	if req.NumberOfQuestions < 1 || req.NumberOfQuestions > MaxInterviewQuestions {
		return nil, apperror.Validation(
			"number_of_questions must be between 1 and %d, got %d",
			MaxInterviewQuestions, req.NumberOfQuestions)
	}
	questions, err := s.selector.SelectForInterview(req.CategoryIDs, req.DifficultyLevels, req.NumberOfQuestions)
	if err != nil {
		return nil, err
	}
	return s.createSession(userID, model.SessionKindFull, questions)
}

// createSession persists the session and its answer slots in one
// transaction; order indices follow selection order, 1-based.
func (s *sessionService) createSession(userID uint, kind model.SessionKind, questions []model.Question) (*dto.SessionDetailDTO, error) {
	session := model.Session{
		UserID:        userID,
		Kind:          kind,
		QuestionCount: len(questions),
		Status:        model.SessionStatusInProgress,
	}
	for i, q := range questions {
		session.Answers = append(session.Answers, model.Answer{
			QuestionID: q.ID,
			OrderIndex: i + 1,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.sessionRepo.Create(tx, &session)
	})
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Str("kind", string(kind)).
			Msg("Failed to create practice session")
		return nil, apperror.Internal(err, "creating session")
	}

	log.Info().Uint("sessionID", session.ID).Uint("userID", userID).
		Str("kind", string(kind)).Int("questions", len(questions)).
		Msg("Practice session started")

	return s.GetSession(session.ID, userID)
}

func (s *sessionService) GetSession(sessionID, userID uint) (*dto.SessionDetailDTO, error) {
	session, err := s.sessionRepo.FindByIDAndUserWithDetails(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("session %d not found", sessionID)
		}
		return nil, apperror.Internal(err, "loading session %d", sessionID)
	}
	return toSessionDetailDTO(session), nil
}
