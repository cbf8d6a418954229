package controller

import (
	"errors"
	"skillmaster_backend/internal/service"
	"skillmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	CatalogService *service.CatalogService
}

func NewSkillController(catalogService *service.CatalogService) *SkillController {
	return &SkillController{CatalogService: catalogService}
}

// CreateSkill godoc
// @Summary Create a skill
// @Description Create a progression skill under a subject; one per level per subject
// @Tags skills
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.SkillRequest true "Skill payload"
// @Success 201 {object} util.Response{data=model.Skill}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	var req service.SkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.CatalogService.CreateSkill(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrSlugTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, skill)
}

// GetSkill godoc
// @Summary Get a skill by slug
// @Tags skills
// @Produce json
// @Param slug path string true "Skill slug"
// @Success 200 {object} util.Response{data=model.Skill}
// @Failure 404 {object} util.Response
// @Router /api/skills/{slug} [get]
func (c *SkillController) GetSkill(ctx *gin.Context) {
	skill, err := c.CatalogService.GetSkill(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrSkillNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, skill)
}

// ListSkills godoc
// @Summary List skills
// @Tags skills
// @Produce json
// @Param subject query string false "Subject slug"
// @Param level query string false "Beginner, Intermediate or Advanced"
// @Success 200 {object} util.Response{data=[]model.Skill}
// @Router /api/skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	skills, err := c.CatalogService.ListSkills(ctx.Query("subject"), ctx.Query("level"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// UpdateSkill godoc
// @Summary Update a skill
// @Tags skills
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Skill slug"
// @Param request body service.SkillUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.Skill}
// @Failure 404 {object} util.Response
// @Router /api/skills/{slug} [put]
func (c *SkillController) UpdateSkill(ctx *gin.Context) {
	var req service.SkillUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.CatalogService.UpdateSkill(ctx.Param("slug"), req)
	if err != nil {
		if errors.Is(err, util.ErrSkillNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, skill)
}

// DeleteSkill godoc
// @Summary Delete a skill
// @Tags skills
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Skill slug"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/skills/{slug} [delete]
func (c *SkillController) DeleteSkill(ctx *gin.Context) {
	if err := c.CatalogService.DeleteSkill(ctx.Param("slug")); err != nil {
		if errors.Is(err, util.ErrSkillNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListSkillModules godoc
// @Summary List modules attached to a skill
// @Tags skills
// @Produce json
// @Param slug path string true "Skill slug"
// @Success 200 {object} util.Response{data=[]model.Module}
// @Failure 404 {object} util.Response
// @Router /api/skills/{slug}/modules [get]
func (c *SkillController) ListSkillModules(ctx *gin.Context) {
	modules, err := c.CatalogService.ListSkillModules(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrSkillNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}
