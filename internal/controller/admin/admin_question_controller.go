package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mockview/practice-api/internal/dto"
	"github.com/mockview/practice-api/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminQuestionController struct {
	questionBank service.QuestionBankService
}

func NewAdminQuestionController(qb service.QuestionBankService) *AdminQuestionController {
	return &AdminQuestionController{questionBank: qb}
}

// CreateQuestion godoc
// @Summary (Admin) Add a question to the bank
// @Description Creates a question with its categories; unknown categories are created on first use.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question body dto.QuestionCreateDTO true "Question data"
// @Success 201 {object} dto.QuestionAdminDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/questions [post]
func (c *AdminQuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuestion: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionBank.CreateQuestion(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateQuestion: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create question", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// ListQuestions godoc
// @Summary (Admin) List questions in the bank
// @Tags Admin - Questions
// @Produce json
// @Param category_id query int false "Filter by category"
// @Param difficulty query string false "Filter by difficulty (easy|medium|hard)"
// @Param active query bool false "Filter by active flag"
// @Success 200 {array} dto.QuestionAdminDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/questions [get]
func (c *AdminQuestionController) ListQuestions(ctx *gin.Context) {
	var categoryID *uint
	if raw := ctx.Query("category_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid category_id format"})
			return
		}
		id := uint(val)
		categoryID = &id
	}
	var difficulty *string
	if raw := ctx.Query("difficulty"); raw != "" {
		difficulty = &raw
	}
	var active *bool
	if raw := ctx.Query("active"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid active format"})
			return
		}
		active = &val
	}

	questions, err := c.questionBank.ListQuestions(categoryID, difficulty, active)
	if err != nil {
		log.Error().Err(err).Msg("Admin ListQuestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list questions"})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}
