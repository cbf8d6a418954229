package controller

import (
	"errors"
	"skillmaster_backend/internal/service"
	"skillmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController handles modules, lessons, activities and lesson
// attachments.
type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

func respondContentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrActivityNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrSlugTaken):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrScoreOutOfRange):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateModule godoc
// @Summary Create a module
// @Tags modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.ModuleRequest true "Module payload"
// @Success 201 {object} util.Response{data=model.Module}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/modules [post]
func (c *ContentController) CreateModule(ctx *gin.Context) {
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ContentService.CreateModule(req)
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// GetModule godoc
// @Summary Get a module by id
// @Tags modules
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id} [get]
func (c *ContentController) GetModule(ctx *gin.Context) {
	module, err := c.ContentService.GetModule(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// ListModules godoc
// @Summary List modules
// @Tags modules
// @Produce json
// @Param subjectId query int false "Filter by subject"
// @Param search query string false "Filter by slug or title"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/modules [get]
func (c *ContentController) ListModules(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))
	subjectID := util.MustParseUint(ctx.Query("subjectId"))

	modules, total, err := c.ContentService.ListModules(subjectID, ctx.Query("search"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: modules, Total: total, Page: page, Limit: limit})
}

// UpdateModule godoc
// @Summary Update a module
// @Tags modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Module ID"
// @Param request body service.ModuleRequest true "Module payload"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id} [put]
func (c *ContentController) UpdateModule(ctx *gin.Context) {
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ContentService.UpdateModule(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary Delete a module
// @Tags modules
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Module ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/modules/{id} [delete]
func (c *ContentController) DeleteModule(ctx *gin.Context) {
	if err := c.ContentService.DeleteModule(util.MustParseUint(ctx.Param("id"))); err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListModuleLessons godoc
// @Summary List lessons in a module
// @Tags modules
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id}/lessons [get]
func (c *ContentController) ListModuleLessons(ctx *gin.Context) {
	lessons, err := c.ContentService.ListModuleLessons(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.LessonRequest true "Lesson payload"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/lessons [post]
func (c *ContentController) CreateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.CreateLesson(req)
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// GetLesson godoc
// @Summary Get a lesson by id
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *ContentController) GetLesson(ctx *gin.Context) {
	lesson, err := c.ContentService.GetLesson(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// ListLessons godoc
// @Summary List lessons
// @Tags lessons
// @Produce json
// @Param moduleId query int false "Filter by module"
// @Param search query string false "Filter by slug or title"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/lessons [get]
func (c *ContentController) ListLessons(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))
	moduleID := util.MustParseUint(ctx.Query("moduleId"))

	lessons, total, err := c.ContentService.ListLessons(moduleID, ctx.Query("search"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: lessons, Total: total, Page: page, Limit: limit})
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param request body service.LessonRequest true "Lesson payload"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [put]
func (c *ContentController) UpdateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.UpdateLesson(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *ContentController) DeleteLesson(ctx *gin.Context) {
	if err := c.ContentService.DeleteLesson(util.MustParseUint(ctx.Param("id"))); err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListLessonActivities godoc
// @Summary List activities in a lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response{data=[]model.Activity}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/activities [get]
func (c *ContentController) ListLessonActivities(ctx *gin.Context) {
	activities, err := c.ContentService.ListLessonActivities(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, activities)
}

// UploadAttachment godoc
// @Summary Upload a lesson attachment
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param file formData file true "Attachment file"
// @Success 201 {object} util.Response{data=model.LessonAttachment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/attachments [post]
func (c *ContentController) UploadAttachment(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	attachment, err := c.ContentService.UploadAttachment(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), file)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, attachment)
}

// ListAttachments godoc
// @Summary List lesson attachments
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response{data=[]model.LessonAttachment}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/attachments [get]
func (c *ContentController) ListAttachments(ctx *gin.Context) {
	attachments, err := c.ContentService.ListAttachments(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, attachments)
}

// CreateActivity godoc
// @Summary Create an activity
// @Description Create a content or quiz activity under a lesson
// @Tags activities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.ActivityRequest true "Activity payload"
// @Success 201 {object} util.Response{data=model.Activity}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/activities [post]
func (c *ContentController) CreateActivity(ctx *gin.Context) {
	var req service.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := c.ContentService.CreateActivity(req)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, activity)
}

// GetActivity godoc
// @Summary Get an activity by id
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} util.Response{data=model.Activity}
// @Failure 404 {object} util.Response
// @Router /api/activities/{id} [get]
func (c *ContentController) GetActivity(ctx *gin.Context) {
	activity, err := c.ContentService.GetActivity(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// ListActivities godoc
// @Summary List activities
// @Tags activities
// @Produce json
// @Param lessonId query int false "Filter by lesson"
// @Param type query string false "content or quiz"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/activities [get]
func (c *ContentController) ListActivities(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))
	lessonID := util.MustParseUint(ctx.Query("lessonId"))

	activities, total, err := c.ContentService.ListActivities(lessonID, ctx.Query("type"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: activities, Total: total, Page: page, Limit: limit})
}

// UpdateActivity godoc
// @Summary Update an activity
// @Tags activities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Activity ID"
// @Param request body service.ActivityRequest true "Activity payload"
// @Success 200 {object} util.Response{data=model.Activity}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/activities/{id} [put]
func (c *ContentController) UpdateActivity(ctx *gin.Context) {
	var req service.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := c.ContentService.UpdateActivity(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrActivityNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, activity)
}

// DeleteActivity godoc
// @Summary Delete an activity
// @Tags activities
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/activities/{id} [delete]
func (c *ContentController) DeleteActivity(ctx *gin.Context) {
	if err := c.ContentService.DeleteActivity(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
