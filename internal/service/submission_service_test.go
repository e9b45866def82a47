package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mockview/practice-api/internal/apperror"
	"github.com/mockview/practice-api/internal/dto"
	"github.com/mockview/practice-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startFull(t *testing.T, env *testEnv, userID uint, n int) *dto.SessionDetailDTO {
	t.Helper()
	for i := 0; i < n; i++ {
		seedQuestion(t, env.db, model.DifficultyMedium, "general")
	}
	session, err := env.sessions.StartFullSession(userID, dto.StartFullSessionDTO{
		UserID:            userID,
		NumberOfQuestions: n,
	})
	require.NoError(t, err)
	return session
}

func TestSubmitSingle_ScoresAndAutoCompletes(t *testing.T) {
	env := newTestEnv(t)
	env.scorer.scores = []float64{82}
	q := seedQuestion(t, env.db, model.DifficultyEasy, "algorithms")

	session, err := env.sessions.StartSingleSession(1, q.ID)
	require.NoError(t, err)

	result, err := env.submissions.SubmitSingle(context.Background(), session.ID, 1, "My answer about the topic.")
	require.NoError(t, err)
	assert.Equal(t, 82.0, result.Score)
	assert.NotEmpty(t, result.Feedback.Overall)

	// The only slot is scored, so the session closed in the same call.
	reread, err := env.sessions.GetSession(session.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, string(model.SessionStatusCompleted), reread.Status)
	require.NotNil(t, reread.OverallScore)
	assert.Equal(t, 82.0, *reread.OverallScore)
	assert.NotNil(t, reread.CompletedAt)

	slot := reread.Answers[0]
	require.NotNil(t, slot.UserAnswer)
	assert.Equal(t, "My answer about the topic.", *slot.UserAnswer)
	require.NotNil(t, slot.Score)
	require.NotNil(t, slot.Feedback)
	assert.NotNil(t, slot.AnsweredAt)
}

func TestSubmit_LastScoreVisibleToCompletionCheck(t *testing.T) {
	env := newTestEnv(t)
	env.scorer.scores = []float64{64, 88}
	session := startFull(t, env, 4, 2)

	_, err := env.submissions.SubmitAnswer(context.Background(), session.ID, 4, session.Answers[0].QuestionID, "first answer")
	require.NoError(t, err)

	// The completion check runs inside the scoring transaction; the score
	// written there must count, so this call closes the session itself.
	_, err = env.submissions.SubmitAnswer(context.Background(), session.ID, 4, session.Answers[1].QuestionID, "second answer")
	require.NoError(t, err)

	var row model.Session
	require.NoError(t, env.db.First(&row, session.ID).Error)
	assert.Equal(t, model.SessionStatusCompleted, row.Status)
	require.NotNil(t, row.OverallScore)
	assert.Equal(t, 76.0, *row.OverallScore)
	require.NotNil(t, row.CompletedAt)
}

func TestSubmit_EmptyAnswerRejectedBeforeAnyWrite(t *testing.T) {
	env := newTestEnv(t)
	q := seedQuestion(t, env.db, model.DifficultyEasy, "algorithms")
	session, err := env.sessions.StartSingleSession(1, q.ID)
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := env.submissions.SubmitSingle(context.Background(), session.ID, 1, text)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), "text %q", text)
	}
	assert.Zero(t, env.scorer.calls)

	reread, err := env.sessions.GetSession(session.ID, 1)
	require.NoError(t, err)
	slot := reread.Answers[0]
	assert.Nil(t, slot.UserAnswer)
	assert.Nil(t, slot.AnsweredAt)
	assert.Nil(t, slot.Score)
	assert.Nil(t, slot.Feedback)
}

func TestSubmit_UpstreamFailureKeepsTextAndAllowsRetry(t *testing.T) {
	env := newTestEnv(t)
	q := seedQuestion(t, env.db, model.DifficultyEasy, "algorithms")
	session, err := env.sessions.StartSingleSession(1, q.ID)
	require.NoError(t, err)

	env.scorer.err = apperror.Upstream(errors.New("timeout"), "scoring provider call failed")
	_, err = env.submissions.SubmitSingle(context.Background(), session.ID, 1, "A thoughtful answer.")
	assert.True(t, apperror.IsKind(err, apperror.KindUpstream))

	// The typed answer survived; only scoring is missing.
	reread, err := env.sessions.GetSession(session.ID, 1)
	require.NoError(t, err)
	slot := reread.Answers[0]
	require.NotNil(t, slot.UserAnswer)
	assert.Equal(t, "A thoughtful answer.", *slot.UserAnswer)
	assert.NotNil(t, slot.AnsweredAt)
	assert.Nil(t, slot.Score)
	assert.Nil(t, slot.Feedback)
	assert.Equal(t, string(model.SessionStatusInProgress), reread.Status)

	// Re-invoking the scoring step on the same slot fills both fields.
	env.scorer.err = nil
	env.scorer.scores = []float64{67}
	result, err := env.submissions.SubmitSingle(context.Background(), session.ID, 1, "A thoughtful answer.")
	require.NoError(t, err)
	assert.Equal(t, 67.0, result.Score)

	reread, err = env.sessions.GetSession(session.ID, 1)
	require.NoError(t, err)
	slot = reread.Answers[0]
	require.NotNil(t, slot.Score)
	require.NotNil(t, slot.Feedback)
	assert.Equal(t, 67.0, *slot.Score)
}

func TestSubmitAnswer_UnknownSlot(t *testing.T) {
	env := newTestEnv(t)
	session := startFull(t, env, 1, 2)
	outsider := seedQuestion(t, env.db, model.DifficultyHard, "other")

	_, err := env.submissions.SubmitAnswer(context.Background(), session.ID, 1, outsider.ID, "answer")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSubmit_CompletedSessionRejected(t *testing.T) {
	env := newTestEnv(t)
	env.scorer.scores = []float64{50}
	q := seedQuestion(t, env.db, model.DifficultyEasy, "algorithms")
	session, err := env.sessions.StartSingleSession(1, q.ID)
	require.NoError(t, err)

	_, err = env.submissions.SubmitSingle(context.Background(), session.ID, 1, "first")
	require.NoError(t, err)

	_, err = env.submissions.SubmitSingle(context.Background(), session.ID, 1, "second")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestFullInterview_AutoCompletesWithRoundedMean(t *testing.T) {
	env := newTestEnv(t)
	env.scorer.scores = []float64{80, 90, 70}
	session := startFull(t, env, 5, 3)

	for _, a := range session.Answers {
		_, err := env.submissions.SubmitAnswer(context.Background(), session.ID, 5, a.QuestionID, "answer text")
		require.NoError(t, err)
	}

	reread, err := env.sessions.GetSession(session.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, string(model.SessionStatusCompleted), reread.Status)
	require.NotNil(t, reread.OverallScore)
	assert.Equal(t, 80.0, *reread.OverallScore)
	assert.NotNil(t, reread.CompletedAt)
}

func TestCompleteSession_ExcludesUnansweredSlots(t *testing.T) {
	env := newTestEnv(t)
	env.scorer.scores = []float64{80, 91}
	session := startFull(t, env, 5, 3)

	for _, a := range session.Answers[:2] {
		_, err := env.submissions.SubmitAnswer(context.Background(), session.ID, 5, a.QuestionID, "answer text")
		require.NoError(t, err)
	}

	completed, err := env.submissions.CompleteSession(session.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, string(model.SessionStatusCompleted), completed.Status)
	require.NotNil(t, completed.OverallScore)
	// mean(80, 91) = 85.5, rounded to 86; the unscored slot is excluded.
	assert.Equal(t, 86.0, *completed.OverallScore)

	third := completed.Answers[2]
	assert.Nil(t, third.Score)
	assert.Nil(t, third.Feedback)
}

func TestCompleteSession_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	env.scorer.scores = []float64{73}
	session := startFull(t, env, 2, 1)

	_, err := env.submissions.SubmitAnswer(context.Background(), session.ID, 2, session.Answers[0].QuestionID, "answer")
	require.NoError(t, err)

	first, err := env.submissions.CompleteSession(session.ID, 2)
	require.NoError(t, err)
	second, err := env.submissions.CompleteSession(session.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, *first.OverallScore, *second.OverallScore)
	require.NotNil(t, first.CompletedAt)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, first.CompletedAt.Equal(*second.CompletedAt))
}

func TestCompleteSession_NothingScored(t *testing.T) {
	env := newTestEnv(t)
	session := startFull(t, env, 2, 2)

	_, err := env.submissions.CompleteSession(session.ID, 2)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	reread, err := env.sessions.GetSession(session.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, string(model.SessionStatusInProgress), reread.Status)
	assert.Nil(t, reread.OverallScore)
}

func TestSubmit_ScoreOutOfRangeRejected(t *testing.T) {
	env := newTestEnv(t)
	env.scorer.scores = []float64{150}
	q := seedQuestion(t, env.db, model.DifficultyEasy, "algorithms")
	session, err := env.sessions.StartSingleSession(1, q.ID)
	require.NoError(t, err)

	_, err = env.submissions.SubmitSingle(context.Background(), session.ID, 1, "answer")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	// Score and feedback stay absent together.
	reread, err := env.sessions.GetSession(session.ID, 1)
	require.NoError(t, err)
	slot := reread.Answers[0]
	assert.Nil(t, slot.Score)
	assert.Nil(t, slot.Feedback)
	assert.Equal(t, string(model.SessionStatusInProgress), reread.Status)
}

func TestScoreAndFeedback_AlwaysWrittenTogether(t *testing.T) {
	env := newTestEnv(t)
	env.scorer.scores = []float64{60, 70}
	session := startFull(t, env, 9, 2)

	_, err := env.submissions.SubmitAnswer(context.Background(), session.ID, 9, session.Answers[0].QuestionID, "answer")
	require.NoError(t, err)

	var answers []model.Answer
	require.NoError(t, env.db.Where("session_id = ?", session.ID).Order("order_index").Find(&answers).Error)
	for _, a := range answers {
		if a.Score == nil {
			assert.Nil(t, a.Feedback, "slot %d has feedback without score", a.OrderIndex)
		} else {
			assert.NotNil(t, a.Feedback, "slot %d has score without feedback", a.OrderIndex)
		}
	}
}
