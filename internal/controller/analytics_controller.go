package controller

import (
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// GetOverview godoc
// @Summary 平台统计概览
// @Description 用户/科目/测验总数、参与度最高的10个测验、科目热度和科目平均分
// @Tags 统计分析
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AnalyticsOverview} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/admin/analytics [get]
func (c *AnalyticsController) GetOverview(ctx *gin.Context) {
	overview, err := c.AnalyticsService.GetOverview()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
