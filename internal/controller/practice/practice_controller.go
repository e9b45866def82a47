package practice

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mockview/practice-api/internal/apperror"
	"github.com/mockview/practice-api/internal/dto"
	"github.com/mockview/practice-api/internal/service"
	"github.com/rs/zerolog/log"
)

type PracticeController struct {
	sessionService    service.SessionService
	submissionService service.SubmissionService
}

func NewPracticeController(ss service.SessionService, sub service.SubmissionService) *PracticeController {
	return &PracticeController{
		sessionService:    ss,
		submissionService: sub,
	}
}

// StartSingleSession godoc
// @Summary Start a single-question practice session
// @Description Creates a session with one pre-allocated answer slot for the given question.
// @Tags Practice
// @Accept json
// @Produce json
// @Param request body dto.StartSingleSessionDTO true "User and question"
// @Success 201 {object} dto.SessionDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found or inactive"
// @Router /practice/start-single [post]
func (c *PracticeController) StartSingleSession(ctx *gin.Context) {
	var req dto.StartSingleSessionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.sessionService.StartSingleSession(req.UserID, req.QuestionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, session)
}

// StartFullSession godoc
// @Summary Start a full mock interview session
// @Description Selects questions by category/difficulty filters and creates a session with one slot per question.
// @Tags Practice
// @Accept json
// @Produce json
// @Param request body dto.StartFullSessionDTO true "User, filters and question count"
// @Success 201 {object} dto.SessionDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Question pool cannot satisfy the request"
// @Router /practice/start-full [post]
func (c *PracticeController) StartFullSession(ctx *gin.Context) {
	var req dto.StartFullSessionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.sessionService.StartFullSession(req.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, session)
}

// SubmitSingle godoc
// @Summary Submit the answer of a single-question session
// @Description Persists the text, scores it via the AI provider and returns score plus structured feedback.
// @Tags Practice
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param request body dto.SubmitSingleDTO true "User and answer text"
// @Success 200 {object} dto.AnswerResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Scoring provider failed; the answer text is kept"
// @Router /practice/sessions/{session_id}/submit-single [post]
func (c *PracticeController) SubmitSingle(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	var req dto.SubmitSingleDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.SubmitSingle(ctx.Request.Context(), sessionID, req.UserID, req.UserAnswer)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// SubmitAnswer godoc
// @Summary Submit an answer for one question of a full interview
// @Tags Practice
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param request body dto.SubmitAnswerDTO true "User, question and answer text"
// @Success 200 {object} dto.AnswerResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Scoring provider failed; the answer text is kept"
// @Router /practice/sessions/{session_id}/submit-answer [post]
func (c *PracticeController) SubmitAnswer(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	var req dto.SubmitAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.SubmitAnswer(ctx.Request.Context(), sessionID, req.UserID, req.QuestionID, req.UserAnswer)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// CompleteSession godoc
// @Summary Finalize a session
// @Description Computes the overall score from the scored answers and marks the session completed. Idempotent.
// @Tags Practice
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param request body dto.CompleteSessionDTO true "User"
// @Success 200 {object} dto.SessionDetailDTO
// @Failure 400 {object} dto.ErrorResponse "No scored answers yet"
// @Failure 404 {object} dto.ErrorResponse
// @Router /practice/sessions/{session_id}/complete [post]
func (c *PracticeController) CompleteSession(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	var req dto.CompleteSessionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.submissionService.CompleteSession(sessionID, req.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// GetSession godoc
// @Summary Get a session with its answers and feedback
// @Tags Practice
// @Produce json
// @Param session_id path int true "Session ID"
// @Param user_id query int true "User ID (temporary, will come from auth token)"
// @Success 200 {object} dto.SessionDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /practice/sessions/{session_id} [get]
func (c *PracticeController) GetSession(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	userIDStr := ctx.Query("user_id")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id query parameter"})
		return
	}

	session, err := c.sessionService.GetSession(sessionID, uint(userID))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// respondError maps the error taxonomy to HTTP statuses. The kind travels in
// the body so clients can tell a dead provider from a malformed response.
func respondError(ctx *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case apperror.KindValidation:
		status = http.StatusBadRequest
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindInsufficientData:
		status = http.StatusUnprocessableEntity
	case apperror.KindUpstream, apperror.KindSchema:
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(status, dto.ErrorResponse{Message: "Internal server error", Kind: string(kind)})
		return
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error(), Kind: string(kind)})
}
