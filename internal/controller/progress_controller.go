package controller

import (
	"errors"
	"skillmaster_backend/internal/service"
	"skillmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetUserProgress godoc
// @Summary Get a user's progress history
// @Tags progress
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Router /api/progress/{userId} [get]
func (c *ProgressController) GetUserProgress(ctx *gin.Context) {
	entries, err := c.ProgressService.GetUserProgress(ctx.Param("userId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// ListForLesson godoc
// @Summary Get a user's progress entries for one lesson
// @Tags progress
// @Produce json
// @Param userId path string true "User ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Failure 404 {object} util.Response
// @Router /api/progress/{userId}/lesson/{lessonId} [get]
func (c *ProgressController) ListForLesson(ctx *gin.Context) {
	entries, err := c.ProgressService.ListForLesson(ctx.Param("userId"), util.MustParseUint(ctx.Param("lessonId")))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// MarkCompleted godoc
// @Summary Mark a lesson or activity completed
// @Description Append a completion event with an optional score
// @Tags progress
// @Accept json
// @Produce json
// @Param request body service.MarkCompletedRequest true "Completion payload"
// @Success 201 {object} util.Response{data=model.Progress}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/progress/complete [post]
func (c *ProgressController) MarkCompleted(ctx *gin.Context) {
	var req service.MarkCompletedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.ProgressService.MarkLessonCompleted(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound), errors.Is(err, util.ErrActivityNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrScoreOutOfRange):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, entry)
}
