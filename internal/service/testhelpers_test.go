package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mockview/practice-api/internal/model"
	"github.com/mockview/practice-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every statement on the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Question{},
		&model.Session{},
		&model.Answer{},
	))
	return db
}

func seedQuestion(t *testing.T, db *gorm.DB, difficulty string, categories ...string) *model.Question {
	t.Helper()
	var cats []model.Category
	for _, name := range categories {
		var c model.Category
		require.NoError(t, db.Where(model.Category{Name: name}).FirstOrCreate(&c).Error)
		cats = append(cats, c)
	}
	q := model.Question{
		Title:      fmt.Sprintf("question-%s", difficulty),
		Content:    "Explain the concept under discussion.",
		Difficulty: difficulty,
		IsActive:   true,
		Categories: cats,
	}
	require.NoError(t, db.Create(&q).Error)
	return &q
}

func seedInactiveQuestion(t *testing.T, db *gorm.DB) *model.Question {
	t.Helper()
	q := model.Question{
		Title:      "retired question",
		Content:    "No longer asked.",
		Difficulty: model.DifficultyEasy,
	}
	require.NoError(t, db.Create(&q).Error)
	require.NoError(t, db.Model(&model.Question{}).Where("id = ?", q.ID).Update("is_active", false).Error)
	q.IsActive = false
	return &q
}

// stubScorer replaces the Gemini boundary in tests. Scores are consumed in
// order; err, when set, wins over scores.
type stubScorer struct {
	scores   []float64
	feedback model.Feedback
	err      error
	calls    int
}

func (s *stubScorer) Score(_ context.Context, _ *model.Question, _ string) (*ScoringResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	score := 75.0
	if len(s.scores) > 0 {
		score = s.scores[0]
		if len(s.scores) > 1 {
			s.scores = s.scores[1:]
		}
	}
	fb := s.feedback
	if fb.Overall == "" {
		fb = model.Feedback{
			Overall:      "Solid answer overall.",
			Strengths:    []string{"clear structure"},
			Improvements: []string{"add an example"},
		}
	}
	return &ScoringResult{
		Score:    score,
		Feedback: fb,
		Raw:      `{"score": ` + fmt.Sprintf("%.0f", score) + `}`,
	}, nil
}

type testEnv struct {
	db          *gorm.DB
	sessions    SessionService
	submissions SubmissionService
	scorer      *stubScorer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	sessionRepo := repository.NewSessionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	selector := NewQuestionSelectorService(questionRepo)
	aggregator := NewSessionAggregatorService()
	scorer := &stubScorer{}

	return &testEnv{
		db:          db,
		sessions:    NewSessionService(sessionRepo, selector, db),
		submissions: NewSubmissionService(sessionRepo, answerRepo, scorer, aggregator, db),
		scorer:      scorer,
	}
}
