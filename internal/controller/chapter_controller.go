package controller

import (
	"errors"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChapterController struct {
	CatalogService *service.CatalogService
}

func NewChapterController(catalogService *service.CatalogService) *ChapterController {
	return &ChapterController{CatalogService: catalogService}
}

// swagger:model ChapterRequest
type ChapterRequest struct {
	SubjectID   uint   `json:"subjectId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListChapters godoc
// @Summary 章节列表
// @Description 按名称模糊搜索章节，可按科目过滤
// @Tags 章节管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   search query string false "搜索关键字"
// @Param   subject_id query int false "科目ID"
// @Success 200 {object} util.Response{data=[]repository.ChapterRow} "成功"
// @Router /api/admin/chapters [get]
func (c *ChapterController) ListChapters(ctx *gin.Context) {
	rows, err := c.CatalogService.ListChapters(ctx.Query("search"), util.MustParseUint(ctx.Query("subject_id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// CreateChapter godoc
// @Summary 创建章节
// @Tags 章节管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ChapterRequest true "章节信息"
// @Success 201 {object} util.Response{data=model.Chapter} "创建成功"
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/admin/chapters [post]
func (c *ChapterController) CreateChapter(ctx *gin.Context) {
	var req ChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.CatalogService.CreateChapter(req.SubjectID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, chapter)
}

// UpdateChapter godoc
// @Summary 更新章节
// @Tags 章节管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "章节ID"
// @Param   body body ChapterRequest true "章节信息"
// @Success 200 {object} util.Response{data=model.Chapter} "成功"
// @Failure 404 {object} util.Response "章节或科目不存在"
// @Router /api/admin/chapters/{id} [put]
func (c *ChapterController) UpdateChapter(ctx *gin.Context) {
	var req ChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.CatalogService.UpdateChapter(util.MustParseUint(ctx.Param("id")), req.SubjectID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, util.ErrChapterNotFound) || errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, chapter)
}

// DeleteChapter godoc
// @Summary 删除章节
// @Description 级联删除章节下的测验、题目、成绩和答题记录
// @Tags 章节管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "章节ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/admin/chapters/{id} [delete]
func (c *ChapterController) DeleteChapter(ctx *gin.Context) {
	if err := c.CatalogService.DeleteChapter(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
