package controller

import (
	"skillmaster_backend/internal/service"
	"skillmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SeedController struct {
	SeedService *service.SeedService
}

func NewSeedController(seedService *service.SeedService) *SeedController {
	return &SeedController{SeedService: seedService}
}

// RunSeed godoc
// @Summary Seed the initial catalog
// @Description Idempotently create the starter subjects, skills, modules, lessons and activities
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/seed [post]
func (c *SeedController) RunSeed(ctx *gin.Context) {
	if err := c.SeedService.Run(); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"seeded": true})
}
