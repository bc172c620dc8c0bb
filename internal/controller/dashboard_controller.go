package controller

import (
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// AdminDashboard godoc
// @Summary 管理员首页数据
// @Description 用户/科目/测验数量和最近创建的测验
// @Tags 仪表盘
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AdminDashboard} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/admin/dashboard [get]
func (c *DashboardController) AdminDashboard(ctx *gin.Context) {
	dashboard, err := c.DashboardService.GetAdminDashboard()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// UserDashboard godoc
// @Summary 用户首页数据
// @Description 最近成绩、平均分、科目列表和即将开始的测验
// @Tags 仪表盘
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserDashboard} "成功"
// @Router /api/user/dashboard [get]
func (c *DashboardController) UserDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.GetUserDashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
