package controller

import (
	"errors"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	CatalogService *service.CatalogService
}

func NewQuestionController(catalogService *service.CatalogService) *QuestionController {
	return &QuestionController{CatalogService: catalogService}
}

// swagger:model QuestionRequest
type QuestionRequest struct {
	QuestionText  string   `json:"questionText" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer *int     `json:"correctAnswer" binding:"required"`
}

// QuestionView 管理端题目视图，含正确答案
type QuestionView struct {
	ID            uint     `json:"id"`
	QuizID        uint     `json:"quizId"`
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

func toQuestionView(q *model.Question) QuestionView {
	return QuestionView{
		ID:            q.ID,
		QuizID:        q.QuizID,
		QuestionText:  q.QuestionText,
		Options:       util.DecodeOptions(q.Options),
		CorrectAnswer: q.CorrectAnswer,
	}
}

// ListQuestions godoc
// @Summary 题目列表
// @Description 管理员查看测验下的所有题目，含正确答案
// @Tags 题目管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]QuestionView} "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/admin/quizzes/{id}/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	questions, err := c.CatalogService.ListQuestions(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	views := make([]QuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, toQuestionView(&questions[i]))
	}
	util.Success(ctx, views)
}

// CreateQuestion godoc
// @Summary 创建题目
// @Description 题目必须恰好包含4个选项，正确答案为选项下标0到3
// @Tags 题目管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Param   body body QuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=QuestionView} "创建成功"
// @Failure 400 {object} util.Response "选项数量或正确答案不合法"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/admin/quizzes/{id}/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CatalogService.CreateQuestion(util.MustParseUint(ctx.Param("id")), service.QuestionInput{
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectAnswer: *req.CorrectAnswer,
	})
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else if errors.Is(err, service.ErrInvalidQuestion) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, toQuestionView(question))
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 题目管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body QuestionRequest true "题目信息"
// @Success 200 {object} util.Response{data=QuestionView} "成功"
// @Failure 400 {object} util.Response "选项数量或正确答案不合法"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CatalogService.UpdateQuestion(util.MustParseUint(ctx.Param("id")), service.QuestionInput{
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectAnswer: *req.CorrectAnswer,
	})
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else if errors.Is(err, service.ErrInvalidQuestion) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, toQuestionView(question))
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Description 同时清理该题目关联的答题记录
// @Tags 题目管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	quizID, err := c.CatalogService.DeleteQuestion(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"quizId": quizID})
}
