package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/devquiz-service/internal/services"
	"github.com/SAP-F-2025/devquiz-service/internal/utils"
	"github.com/SAP-F-2025/devquiz-service/internal/validator"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ===== REQUEST STRUCTURES =====

type StartQuizRequest struct {
	TopicID string `json:"topic_id" validate:"required,max=64,topic_slug"`
}

type ToggleChoiceRequest struct {
	Option string `json:"option" validate:"required"`
}

type SetPairRequest struct {
	Left  string `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

// QuizHandler exposes the quiz state machine. Every transition answers with the current view;
// an ignored transition is a 200 with applied=false.
type QuizHandler struct {
	BaseHandler
	quizService   services.QuizService
	exportService services.ImportExportService
}

func NewQuizHandler(
	quizService services.QuizService,
	exportService services.ImportExportService,
	validator *validator.Validator,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:   NewBaseHandler(logger, validator),
		quizService:   quizService,
		exportService: exportService,
	}
}

// GetState returns the current quiz view
// @Summary Get quiz state
// @Tags quiz
// @Produce json
// @Success 200 {object} services.QuizView
// @Router /quiz [get]
func (h *QuizHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.quizService.State(c.Request.Context()))
}

// StartQuiz draws a session for a topic
// @Summary Start quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body StartQuizRequest true "Topic"
// @Success 200 {object} services.QuizView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quiz/start [post]
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var req StartQuizRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Starting quiz", "topic_id", req.TopicID)

	view, err := h.quizService.Start(c.Request.Context(), req.TopicID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *QuizHandler) Next(c *gin.Context) {
	c.JSON(http.StatusOK, h.quizService.Next(c.Request.Context()))
}

func (h *QuizHandler) Prev(c *gin.Context) {
	c.JSON(http.StatusOK, h.quizService.Prev(c.Request.Context()))
}

// SetAnswer replaces the answer of the current question
// @Summary Answer current question
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body services.AnswerRequest true "One of text, choices or pairs"
// @Success 200 {object} services.QuizView
// @Failure 400 {object} ErrorResponse
// @Router /quiz/answer [put]
func (h *QuizHandler) SetAnswer(c *gin.Context) {
	var req services.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	view, err := h.quizService.Answer(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *QuizHandler) ToggleChoice(c *gin.Context) {
	var req ToggleChoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.quizService.ToggleChoice(c.Request.Context(), req.Option))
}

func (h *QuizHandler) SetPair(c *gin.Context) {
	var req SetPairRequest
	if !h.bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.quizService.SetPair(c.Request.Context(), req.Left, req.Right))
}

func (h *QuizHandler) ClearPair(c *gin.Context) {
	left := ParseStringIDParam(c, "left")
	if left == "" {
		return
	}
	c.JSON(http.StatusOK, h.quizService.ClearPair(c.Request.Context(), left))
}

// FinishQuiz scores the session. Feedback is generated in the background; poll GetState or
// GetResult for its status.
// @Summary Finish quiz
// @Tags quiz
// @Produce json
// @Success 200 {object} services.QuizView
// @Router /quiz/finish [post]
func (h *QuizHandler) FinishQuiz(c *gin.Context) {
	h.LogRequest(c, "Finishing quiz")
	c.JSON(http.StatusOK, h.quizService.Finish(c.Request.Context()))
}

func (h *QuizHandler) AbandonQuiz(c *gin.Context) {
	c.JSON(http.StatusOK, h.quizService.Abandon(c.Request.Context()))
}

func (h *QuizHandler) RestartQuiz(c *gin.Context) {
	c.JSON(http.StatusOK, h.quizService.Restart(c.Request.Context()))
}

// GetResult returns the review report of a completed quiz
// @Summary Get quiz result
// @Tags quiz
// @Produce json
// @Success 200 {object} services.ResultView
// @Failure 409 {object} ErrorResponse
// @Router /quiz/result [get]
func (h *QuizHandler) GetResult(c *gin.Context) {
	result, err := h.quizService.Result(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportResult downloads the review report as a workbook
// @Summary Export quiz result
// @Tags quiz
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 409 {object} ErrorResponse
// @Router /quiz/result/export [get]
func (h *QuizHandler) ExportResult(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.quizService.Result(ctx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	data, err := h.exportService.ExportReviewToExcel(ctx, result)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("devquiz-%s.xlsx", result.Review.Result.SessionID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
