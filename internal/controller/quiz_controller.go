package controller

import (
	"errors"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	CatalogService *service.CatalogService
}

func NewQuizController(catalogService *service.CatalogService) *QuizController {
	return &QuizController{CatalogService: catalogService}
}

// swagger:model QuizRequest
type QuizRequest struct {
	ChapterID   uint   `json:"chapterId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Duration    int    `json:"duration"`
}

func (r *QuizRequest) toInput() (service.QuizInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return service.QuizInput{}, errors.New("invalid date, expected YYYY-MM-DD")
	}
	duration := r.Duration
	if duration <= 0 {
		duration = 30
	}
	return service.QuizInput{
		ChapterID:   r.ChapterID,
		Title:       r.Title,
		Description: r.Description,
		Date:        date,
		Duration:    duration,
	}, nil
}

// ListQuizzes godoc
// @Summary 测验列表
// @Description 按标题模糊搜索测验，可按章节过滤
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   search query string false "搜索关键字"
// @Param   chapter_id query int false "章节ID"
// @Success 200 {object} util.Response{data=[]repository.QuizRow} "成功"
// @Router /api/admin/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	rows, err := c.CatalogService.ListQuizzes(ctx.Query("search"), util.MustParseUint(ctx.Query("chapter_id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// CreateQuiz godoc
// @Summary 创建测验
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body QuizRequest true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.CatalogService.CreateQuiz(in)
	if err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary 更新测验
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Param   body body QuizRequest true "测验信息"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 404 {object} util.Response "测验或章节不存在"
// @Router /api/admin/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.CatalogService.UpdateQuiz(util.MustParseUint(ctx.Param("id")), in)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) || errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Description 级联删除测验下的题目、成绩和答题记录
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.CatalogService.DeleteQuiz(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
