package controller

import (
	"errors"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	CatalogService *service.CatalogService
}

func NewSubjectController(catalogService *service.CatalogService) *SubjectController {
	return &SubjectController{CatalogService: catalogService}
}

// swagger:model SubjectRequest
type SubjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListSubjects godoc
// @Summary 科目列表
// @Description 按名称模糊搜索科目
// @Tags 科目管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   search query string false "搜索关键字"
// @Success 200 {object} util.Response{data=[]model.Subject} "成功"
// @Router /api/admin/subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.CatalogService.ListSubjects(ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// CreateSubject godoc
// @Summary 创建科目
// @Tags 科目管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubjectRequest true "科目信息"
// @Success 201 {object} util.Response{data=model.Subject} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.CatalogService.CreateSubject(req.Name, req.Description)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// UpdateSubject godoc
// @Summary 更新科目
// @Tags 科目管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "科目ID"
// @Param   body body SubjectRequest true "科目信息"
// @Success 200 {object} util.Response{data=model.Subject} "成功"
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/admin/subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	var req SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.CatalogService.UpdateSubject(util.MustParseUint(ctx.Param("id")), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, subject)
}

// DeleteSubject godoc
// @Summary 删除科目
// @Description 级联删除科目下的章节、测验、题目、成绩和答题记录
// @Tags 科目管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "科目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "科目不存在"
// @Router /api/admin/subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	if err := c.CatalogService.DeleteSubject(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
