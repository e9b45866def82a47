package service

import (
	"math"

	"github.com/mockview/practice-api/internal/model"
)

// SessionAggregatorService computes the aggregate score of a session from
// its answers. It is pure arithmetic; callers own the state transition and
// its transaction boundary.
type SessionAggregatorService interface {
	// OverallScore returns the arithmetic mean of all scored answers,
	// rounded to the nearest integer. ok is false when no answer has a
	// score yet, in which case the session must stay open.
	OverallScore(answers []model.Answer) (score float64, ok bool)
	// AllScored reports whether every slot carries a score.
	AllScored(answers []model.Answer) bool
}

type sessionAggregatorService struct{}

func NewSessionAggregatorService() SessionAggregatorService {
	return &sessionAggregatorService{}
}

func (s *sessionAggregatorService) OverallScore(answers []model.Answer) (float64, bool) {
	sum := 0.0
	scored := 0
	for _, a := range answers {
		if a.Score != nil {
			sum += *a.Score
			scored++
		}
	}
	if scored == 0 {
		return 0, false
	}
	return math.Round(sum / float64(scored)), true
}

func (s *sessionAggregatorService) AllScored(answers []model.Answer) bool {
	if len(answers) == 0 {
		return false
	}
	for _, a := range answers {
		if a.Score == nil {
			return false
		}
	}
	return true
}
