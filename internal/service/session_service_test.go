package service

import (
	"testing"

	"github.com/mockview/practice-api/internal/apperror"
	"github.com/mockview/practice-api/internal/dto"
	"github.com/mockview/practice-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSingleSession(t *testing.T) {
	env := newTestEnv(t)
	q := seedQuestion(t, env.db, model.DifficultyEasy, "algorithms")

	session, err := env.sessions.StartSingleSession(42, q.ID)
	require.NoError(t, err)

	assert.Equal(t, string(model.SessionKindSingle), session.Kind)
	assert.Equal(t, string(model.SessionStatusInProgress), session.Status)
	assert.Equal(t, uint(42), session.UserID)
	assert.Equal(t, 1, session.QuestionCount)
	assert.Nil(t, session.OverallScore)
	assert.Nil(t, session.CompletedAt)

	require.Len(t, session.Answers, 1)
	slot := session.Answers[0]
	assert.Equal(t, 1, slot.OrderIndex)
	assert.Equal(t, q.ID, slot.QuestionID)
	assert.Equal(t, q.Content, slot.Question.Content)
	assert.Nil(t, slot.UserAnswer)
	assert.Nil(t, slot.Score)
	assert.Nil(t, slot.Feedback)
	assert.Nil(t, slot.AnsweredAt)
}

func TestStartSingleSession_QuestionMissingOrInactive(t *testing.T) {
	env := newTestEnv(t)
	inactive := seedInactiveQuestion(t, env.db)

	_, err := env.sessions.StartSingleSession(1, 9999)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = env.sessions.StartSingleSession(1, inactive.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestStartFullSession_OrderIndicesAreStablePermutation(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 5; i++ {
		seedQuestion(t, env.db, model.DifficultyMedium, "system design")
	}

	session, err := env.sessions.StartFullSession(7, dto.StartFullSessionDTO{
		UserID:            7,
		NumberOfQuestions: 5,
	})
	require.NoError(t, err)
	require.Len(t, session.Answers, 5)

	seen := make(map[int]bool)
	questionIDs := make(map[uint]bool)
	for i, a := range session.Answers {
		assert.Equal(t, i+1, a.OrderIndex)
		assert.False(t, seen[a.OrderIndex], "duplicate order index %d", a.OrderIndex)
		assert.False(t, questionIDs[a.QuestionID], "question %d selected twice", a.QuestionID)
		seen[a.OrderIndex] = true
		questionIDs[a.QuestionID] = true
	}

	// The assignment survives re-reads untouched.
	reread, err := env.sessions.GetSession(session.ID, 7)
	require.NoError(t, err)
	require.Len(t, reread.Answers, 5)
	for i, a := range reread.Answers {
		assert.Equal(t, session.Answers[i].OrderIndex, a.OrderIndex)
		assert.Equal(t, session.Answers[i].QuestionID, a.QuestionID)
	}
}

func TestStartFullSession_InsufficientPool(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 3; i++ {
		seedQuestion(t, env.db, model.DifficultyHard, "databases")
	}

	_, err := env.sessions.StartFullSession(1, dto.StartFullSessionDTO{
		UserID:            1,
		NumberOfQuestions: 5,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientData))

	// No partial session was created.
	var count int64
	require.NoError(t, env.db.Model(&model.Session{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStartFullSession_CountOutOfRange(t *testing.T) {
	env := newTestEnv(t)

	for _, n := range []int{0, -1, 11} {
		_, err := env.sessions.StartFullSession(1, dto.StartFullSessionDTO{
			UserID:            1,
			NumberOfQuestions: n,
		})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), "count %d", n)
	}
}

func TestStartFullSession_RespectsFilters(t *testing.T) {
	env := newTestEnv(t)
	wanted1 := seedQuestion(t, env.db, model.DifficultyEasy, "algorithms")
	wanted2 := seedQuestion(t, env.db, model.DifficultyMedium, "algorithms")
	seedQuestion(t, env.db, model.DifficultyHard, "algorithms")  // wrong difficulty
	seedQuestion(t, env.db, model.DifficultyEasy, "behavioral")  // wrong category
	seedInactiveQuestion(t, env.db)

	var algorithms model.Category
	require.NoError(t, env.db.Where("name = ?", "algorithms").First(&algorithms).Error)

	session, err := env.sessions.StartFullSession(3, dto.StartFullSessionDTO{
		UserID:            3,
		CategoryIDs:       []uint{algorithms.ID},
		DifficultyLevels:  []string{model.DifficultyEasy, model.DifficultyMedium},
		NumberOfQuestions: 2,
	})
	require.NoError(t, err)
	require.Len(t, session.Answers, 2)

	got := map[uint]bool{}
	for _, a := range session.Answers {
		got[a.QuestionID] = true
	}
	assert.True(t, got[wanted1.ID])
	assert.True(t, got[wanted2.ID])
}

func TestGetSession_OwnershipIndistinguishableFromAbsence(t *testing.T) {
	env := newTestEnv(t)
	q := seedQuestion(t, env.db, model.DifficultyEasy, "algorithms")

	session, err := env.sessions.StartSingleSession(10, q.ID)
	require.NoError(t, err)

	_, errForeign := env.sessions.GetSession(session.ID, 11)
	_, errAbsent := env.sessions.GetSession(99999, 10)

	assert.True(t, apperror.IsKind(errForeign, apperror.KindNotFound))
	assert.True(t, apperror.IsKind(errAbsent, apperror.KindNotFound))
	assert.Equal(t, apperror.KindOf(errForeign), apperror.KindOf(errAbsent))
}
