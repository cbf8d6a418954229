package controller

import (
	"errors"
	"skillmaster_backend/internal/service"
	"skillmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	CatalogService *service.CatalogService
}

func NewSubjectController(catalogService *service.CatalogService) *SubjectController {
	return &SubjectController{CatalogService: catalogService}
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.SubjectRequest true "Subject payload"
// @Success 201 {object} util.Response{data=model.Subject}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req service.SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.CatalogService.CreateSubject(req)
	if err != nil {
		if errors.Is(err, util.ErrSlugTaken) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// GetSubject godoc
// @Summary Get a subject by id
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} util.Response{data=model.Subject}
// @Failure 404 {object} util.Response
// @Router /api/subjects/{id} [get]
func (c *SubjectController) GetSubject(ctx *gin.Context) {
	subject, err := c.CatalogService.GetSubject(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subject)
}

// ListSubjects godoc
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Param search query string false "Filter by slug or title"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))
	subjects, total, err := c.CatalogService.ListSubjects(ctx.Query("search"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: subjects, Total: total, Page: page, Limit: limit})
}

// UpdateSubject godoc
// @Summary Update a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Subject ID"
// @Param request body service.SubjectRequest true "Subject payload"
// @Success 200 {object} util.Response{data=model.Subject}
// @Failure 404 {object} util.Response
// @Router /api/subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	var req service.SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.CatalogService.UpdateSubject(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subject)
}

// DeleteSubject godoc
// @Summary Delete a subject
// @Tags subjects
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	if err := c.CatalogService.DeleteSubject(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListSubjectModules godoc
// @Summary List modules for a subject
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} util.Response{data=[]model.Module}
// @Failure 404 {object} util.Response
// @Router /api/subjects/{id}/modules [get]
func (c *SubjectController) ListSubjectModules(ctx *gin.Context) {
	modules, err := c.CatalogService.ListSubjectModules(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}
