package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/devquiz-service/internal/services"
	"github.com/SAP-F-2025/devquiz-service/internal/utils"
	"github.com/SAP-F-2025/devquiz-service/internal/validator"
	"github.com/gin-gonic/gin"
)

const maxImportFileSize = 10 << 20

// TopicHandler serves the topic catalogue and question bank import/export.
type TopicHandler struct {
	BaseHandler
	quizService   services.QuizService
	importService services.ImportExportService
}

func NewTopicHandler(
	quizService services.QuizService,
	importService services.ImportExportService,
	validator *validator.Validator,
	logger utils.Logger,
) *TopicHandler {
	return &TopicHandler{
		BaseHandler:   NewBaseHandler(logger, validator),
		quizService:   quizService,
		importService: importService,
	}
}

// ListTopics lists the topics a quiz can be started on
// @Summary List topics
// @Tags topics
// @Produce json
// @Success 200 {array} models.Topic
// @Router /topics [get]
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.quizService.ListTopics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// ExportQuestions downloads a topic's questions as CSV in the import layout
// @Summary Export topic questions
// @Tags topics
// @Produce text/csv
// @Param id path string true "Topic ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /topics/{id}/questions/export [get]
func (h *TopicHandler) ExportQuestions(c *gin.Context) {
	topicID := ParseStringIDParam(c, "id")
	if topicID == "" {
		return
	}

	data, err := h.importService.ExportQuestionsToCSV(c.Request.Context(), topicID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", topicID+"-questions.csv"))
	c.Data(http.StatusOK, "text/csv", data)
}

// ImportQuestions imports questions from an uploaded file
// @Summary Import questions
// @Description Accepts .csv, .xlsx or .json. Invalid rows are reported and skipped.
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Question file"
// @Success 200 {object} models.ImportSummary
// @Failure 400 {object} ErrorResponse
// @Router /questions/import [post]
func (h *TopicHandler) ImportQuestions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "File is required",
			Details: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxImportFileSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "File is too large",
			Details: fmt.Sprintf("maximum size is %d bytes", maxImportFileSize),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing questions", "filename", fileHeader.Filename, "size", fileHeader.Size)

	summary, err := h.importService.ImportQuestionsFromFile(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
