package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mockview/practice-api/internal/apperror"
	"github.com/mockview/practice-api/internal/dto"
	"github.com/mockview/practice-api/internal/model"
	"github.com/mockview/practice-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionService records user answers, drives them through the scoring
// gateway and closes the session once everything is scored. A scoring
// failure never loses the typed answer: the text and submission time are
// persisted before the provider is called, and only the scoring step needs
// to be repeated on the same slot.
type SubmissionService interface {
	SubmitAnswer(ctx context.Context, sessionID, userID, questionID uint, text string) (*dto.AnswerResultDTO, error)
	// SubmitSingle targets the sole slot of a single-question session.
	SubmitSingle(ctx context.Context, sessionID, userID uint, text string) (*dto.AnswerResultDTO, error)
	// CompleteSession finalizes a session explicitly; unanswered slots are
	// excluded from the average. Completing a completed session is a no-op
	// returning the stored result.
	CompleteSession(sessionID, userID uint) (*dto.SessionDetailDTO, error)
}

type submissionService struct {
	sessionRepo repository.SessionRepository
	answerRepo  repository.AnswerRepository
	scoring     ScoringService
	aggregator  SessionAggregatorService
	db          *gorm.DB
}

func NewSubmissionService(
	sessionRepo repository.SessionRepository,
	answerRepo repository.AnswerRepository,
	scoring ScoringService,
	aggregator SessionAggregatorService,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		sessionRepo: sessionRepo,
		answerRepo:  answerRepo,
		scoring:     scoring,
		aggregator:  aggregator,
		db:          db,
	}
}

func (s *submissionService) SubmitAnswer(ctx context.Context, sessionID, userID, questionID uint, text string) (*dto.AnswerResultDTO, error) {
	session, err := s.openSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	answer, err := s.answerRepo.FindBySessionAndQuestion(sessionID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("question %d is not part of session %d", questionID, sessionID)
		}
		return nil, apperror.Internal(err, "loading answer slot")
	}
	return s.submit(ctx, session, answer, text)
}

func (s *submissionService) SubmitSingle(ctx context.Context, sessionID, userID uint, text string) (*dto.AnswerResultDTO, error) {
	session, err := s.openSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Kind != model.SessionKindSingle {
		return nil, apperror.Validation("session %d is a full interview; submit answers per question", sessionID)
	}
	answer, err := s.answerRepo.FindBySessionAndOrder(sessionID, 1)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("session %d has no answer slot", sessionID)
		}
		return nil, apperror.Internal(err, "loading answer slot")
	}
	return s.submit(ctx, session, answer, text)
}

// openSession loads the session and rejects submissions against a completed
// one; the terminal state never reopens.
func (s *submissionService) openSession(sessionID, userID uint) (*model.Session, error) {
	session, err := s.sessionRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("session %d not found", sessionID)
		}
		return nil, apperror.Internal(err, "loading session %d", sessionID)
	}
	if session.Completed() {
		return nil, apperror.Validation("session %d is already completed", sessionID)
	}
	return session, nil
}

func (s *submissionService) submit(ctx context.Context, session *model.Session, answer *model.Answer, text string) (*dto.AnswerResultDTO, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.Validation("answer text must not be empty")
	}

	// Persist the text before calling the provider, so a scoring failure
	// costs the user a retry of the scoring step, not a retype.
	now := time.Now()
	answer.UserAnswer = &text
	answer.AnsweredAt = &now
	if err := s.answerRepo.UpdateSubmission(answer); err != nil {
		return nil, apperror.Internal(err, "persisting answer text")
	}

	result, err := s.scoring.Score(ctx, &answer.Question, text)
	if err != nil {
		log.Error().Err(err).
			Uint("sessionID", session.ID).
			Uint("answerID", answer.ID).
			Msg("Scoring failed; answer text kept, slot stays unscored")
		return nil, err
	}

	if err := s.recordScore(session, answer, result); err != nil {
		return nil, err
	}

	return &dto.AnswerResultDTO{
		AnswerID: answer.ID,
		Score:    result.Score,
		Feedback: *toFeedbackDTO(&result.Feedback),
	}, nil
}

// recordScore writes score and feedback together and, when this was the last
// unscored slot, finalizes the session in the same transaction.
func (s *submissionService) recordScore(session *model.Session, answer *model.Answer, result *ScoringResult) error {
	if result.Score < 0 || result.Score > 100 {
		return apperror.Validation("score %.2f is outside the valid range [0,100]", result.Score)
	}

	score := result.Score
	feedback := result.Feedback
	answer.Score = &score
	answer.Feedback = &feedback
	answer.RawScoring = datatypes.JSON(result.Raw)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.answerRepo.UpdateScoring(tx, answer); err != nil {
			return err
		}

		answers, err := s.answerRepo.FindBySession(tx, session.ID)
		if err != nil {
			return err
		}
		if !s.aggregator.AllScored(answers) {
			return nil
		}
		return s.finalize(tx, session, answers)
	})
	if err != nil {
		return apperror.Internal(err, "recording score for answer %d", answer.ID)
	}
	return nil
}

func (s *submissionService) CompleteSession(sessionID, userID uint) (*dto.SessionDetailDTO, error) {
	session, err := s.sessionRepo.FindByIDAndUserWithDetails(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("session %d not found", sessionID)
		}
		return nil, apperror.Internal(err, "loading session %d", sessionID)
	}

	if session.Completed() {
		// Terminal state; return the stored result without recomputation.
		return toSessionDetailDTO(session), nil
	}

	if _, ok := s.aggregator.OverallScore(session.Answers); !ok {
		return nil, apperror.Validation("session %d has no scored answers to aggregate", sessionID)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.finalize(tx, session, session.Answers)
	})
	if err != nil {
		return nil, apperror.Internal(err, "completing session %d", sessionID)
	}

	return s.getDetails(sessionID, userID)
}

// finalize performs the single in_progress -> completed transition.
func (s *submissionService) finalize(tx *gorm.DB, session *model.Session, answers []model.Answer) error {
	overall, ok := s.aggregator.OverallScore(answers)
	if !ok {
		// Nothing scored; the session stays open.
		return nil
	}
	now := time.Now()
	session.Status = model.SessionStatusCompleted
	session.OverallScore = &overall
	session.CompletedAt = &now
	if err := s.sessionRepo.UpdateCompletion(tx, session); err != nil {
		return err
	}
	log.Info().Uint("sessionID", session.ID).Float64("overallScore", overall).
		Msg("Session completed")
	return nil
}

func (s *submissionService) getDetails(sessionID, userID uint) (*dto.SessionDetailDTO, error) {
	session, err := s.sessionRepo.FindByIDAndUserWithDetails(sessionID, userID)
	if err != nil {
		return nil, apperror.Internal(err, "reloading session %d", sessionID)
	}
	return toSessionDetailDTO(session), nil
}
