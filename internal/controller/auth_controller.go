package controller

import (
	"errors"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username      string `json:"username" binding:"required,min=3,max=64"`
	Password      string `json:"password" binding:"required,min=6"`
	FullName      string `json:"fullName" binding:"required"`
	Qualification string `json:"qualification"`
	DOB           string `json:"dob"`
}

// Register godoc
// @Summary 注册新用户
// @Description 使用提供的信息注册普通用户账号
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "用户名已被占用"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Username:      req.Username,
		FullName:      req.FullName,
		Qualification: req.Qualification,
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			util.BadRequest(ctx, "invalid dob, expected YYYY-MM-DD")
			return
		}
		user.DOB = &dob
	}

	if err := c.AuthService.Register(user, req.Password); err != nil {
		switch {
		case errors.Is(err, util.ErrUsernameTaken):
			util.Conflict(ctx, "该用户名已被占用")
		case errors.Is(err, util.ErrDOBInFuture):
			util.BadRequest(ctx, "出生日期不能晚于今天")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 用户登录
// @Description 验证用户身份并返回JWT令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "用户登录凭据"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "用户名或密码错误"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"fullName": user.FullName,
			"isAdmin":  user.IsAdmin,
			"avatar":   user.Avatar,
		},
	})
}

// Logout godoc
// @Summary 退出登录
// @Description 将当前令牌加入黑名单，之后该令牌不再可用
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	token := ctx.GetString("token")
	if err := c.AuthService.Logout(ctx.Request.Context(), token); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Description 获取当前已认证用户的个人资料
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	profile := gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"fullName":      user.FullName,
		"qualification": user.Qualification,
		"dob":           user.DOB,
		"isAdmin":       user.IsAdmin,
		"avatar":        user.Avatar,
		"createdAt":     user.CreatedAt,
	}
	util.Success(ctx, profile)
}
