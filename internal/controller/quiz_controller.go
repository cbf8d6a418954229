package controller

import (
	"errors"
	"skillmaster_backend/internal/service"
	"skillmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// GenerateQuiz godoc
// @Summary Generate a quiz for a lesson
// @Description Ask the configured model for three multiple-choice questions based on the lesson content and persist them as a new quiz activity
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.GenerateQuizRequest true "Generation parameters"
// @Success 200 {object} util.Response{data=model.Activity}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/ai/quiz/generate [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	var req service.GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := c.QuizService.Generate(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrScoreOutOfRange), errors.Is(err, util.ErrInvalidQuizPayload):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrQuizServiceNotConfigured), errors.Is(err, util.ErrQuizServiceUnavailable):
			util.ServiceUnavailable(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, activity)
}

// GetQuizForLesson godoc
// @Summary Get the quiz for a lesson
// @Description Return the first quiz activity attached to the lesson
// @Tags quiz
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Activity}
// @Failure 404 {object} util.Response
// @Router /api/ai/quiz/lesson/{lessonId} [get]
func (c *QuizController) GetQuizForLesson(ctx *gin.Context) {
	activity, err := c.QuizService.GetQuizForLesson(ctx.Request.Context(), util.MustParseUint(ctx.Param("lessonId")))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) || errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Grade the answers, record the attempt and unlock the next lesson on a passing score
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body service.SubmitQuizRequest true "Submission payload"
// @Success 200 {object} util.Response{data=service.SubmitQuizResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/ai/quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrActivityNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAnswersLengthMismatch):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
