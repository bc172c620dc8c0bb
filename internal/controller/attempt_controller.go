package controller

import (
	"errors"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"
	"quiz_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// ListQuizzes godoc
// @Summary 可参加的测验列表
// @Description 学生端测验列表，附带当前用户已完成的测验ID
// @Tags 测验参加
// @Produce  json
// @Security ApiKeyAuth
// @Param   search query string false "搜索关键字"
// @Param   subject_id query int false "科目ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/user/quizzes [get]
func (c *AttemptController) ListQuizzes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, completedIDs, err := c.AttemptService.ListQuizzes(claims.UserID, ctx.Query("search"), util.MustParseUint(ctx.Query("subject_id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"quizzes":   rows,
		"completed": completedIDs,
	})
}

// TakeQuiz godoc
// @Summary 获取答题页
// @Description 返回测验及其题目（不含正确答案）。已提交过时返回已有成绩ID供跳转
// @Tags 测验参加
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.TakeQuizDetail} "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "已提交过该测验"
// @Failure 422 {object} util.Response "测验没有题目"
// @Router /api/user/quizzes/{id}/take [get]
func (c *AttemptController) TakeQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, existing, err := c.AttemptService.GetQuizForTaking(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizAlreadyTaken):
			ctx.JSON(409, util.Response{
				Code:    409,
				Message: "quiz already taken",
				Data:    gin.H{"scoreId": existing.ID},
			})
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizHasNoQuestion):
			util.Error(ctx, 422, "该测验暂无题目")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Answers map[uint]string `json:"answers"`
}

// SubmitQuiz godoc
// @Summary 提交答卷
// @Description 评分并保存成绩，每个测验每位用户只能提交一次
// @Tags 测验参加
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Param   body body SubmitQuizRequest true "题目ID到所选选项下标的映射"
// @Success 201 {object} util.Response{data=model.Score} "评分完成"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "已提交过该测验"
// @Router /api/user/quizzes/{id}/submit [post]
func (c *AttemptController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	score, err := c.AttemptService.Submit(util.MustParseUint(ctx.Param("id")), claims.UserID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizAlreadyTaken):
			monitoring.QuizSubmissions.WithLabelValues("duplicate").Inc()
			util.Conflict(ctx, "已提交过该测验")
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		default:
			monitoring.QuizSubmissions.WithLabelValues("failed").Inc()
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.QuizSubmissions.WithLabelValues("scored").Inc()
	util.Created(ctx, score)
}

// GetResult godoc
// @Summary 查看成绩详情
// @Description 成绩及逐题对照，仅成绩所有者可见
// @Tags 测验参加
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "成绩ID"
// @Success 200 {object} util.Response{data=service.ResultDetail} "成功"
// @Failure 403 {object} util.Response "无权查看他人成绩"
// @Failure 404 {object} util.Response "成绩不存在"
// @Router /api/user/results/{id} [get]
func (c *AttemptController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.AttemptService.GetResult(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrScoreNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// GetHistory godoc
// @Summary 成绩历史
// @Description 当前用户全部成绩，按提交时间倒序
// @Tags 测验参加
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]repository.HistoryRow} "成功"
// @Router /api/user/history [get]
func (c *AttemptController) GetHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.AttemptService.GetHistory(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
