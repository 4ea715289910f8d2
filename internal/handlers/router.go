package handlers

import (
	"github.com/SAP-F-2025/devquiz-service/internal/services"
	"github.com/SAP-F-2025/devquiz-service/internal/utils"
	"github.com/SAP-F-2025/devquiz-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	quizHandler  *QuizHandler
	topicHandler *TopicHandler
}

func NewHandlerManager(
	quizService services.QuizService,
	importExportService services.ImportExportService,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:  NewQuizHandler(quizService, importExportService, validator, logger),
		topicHandler: NewTopicHandler(quizService, importExportService, validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Topic routes
		topics := v1.Group("/topics")
		{
			topics.GET("", hm.topicHandler.ListTopics)
			topics.GET("/:id/questions/export", hm.topicHandler.ExportQuestions)
		}

		// Question bank routes
		questions := v1.Group("/questions")
		{
			questions.POST("/import", hm.topicHandler.ImportQuestions)
		}

		// Quiz routes
		quiz := v1.Group("/quiz")
		{
			quiz.GET("", hm.quizHandler.GetState)
			quiz.POST("/start", hm.quizHandler.StartQuiz)
			quiz.POST("/next", hm.quizHandler.Next)
			quiz.POST("/prev", hm.quizHandler.Prev)
			quiz.POST("/finish", hm.quizHandler.FinishQuiz)
			quiz.POST("/abandon", hm.quizHandler.AbandonQuiz)
			quiz.POST("/restart", hm.quizHandler.RestartQuiz)

			// Answer management
			quiz.PUT("/answer", hm.quizHandler.SetAnswer)
			quiz.POST("/answer/toggle", hm.quizHandler.ToggleChoice)
			quiz.PUT("/answer/pairs", hm.quizHandler.SetPair)
			quiz.DELETE("/answer/pairs/:left", hm.quizHandler.ClearPair)

			// Results
			quiz.GET("/result", hm.quizHandler.GetResult)
			quiz.GET("/result/export", hm.quizHandler.ExportResult)
		}
	}
}
