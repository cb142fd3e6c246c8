package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"paper-cloud/internal/model"
	"paper-cloud/internal/service"
	"paper-cloud/internal/utils"
	"paper-cloud/pkgs/errcode"
	"paper-cloud/pkgs/response"

	"github.com/gin-gonic/gin"
)

type PaperController struct {
	paperService service.PaperService
}

func NewPaperController(paperService service.PaperService) *PaperController {
	return &PaperController{paperService: paperService}
}

// Upload 上传PDF并异步解析
func (pc *PaperController) Upload(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "用户验证失败")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "上传失败")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ParamError(ctx, errcode.PaperUploadFailed, "上传失败")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(ctx, errcode.PaperUploadFailed, "上传失败")
		return
	}

	paper, err := pc.paperService.Upload(ctx.Request.Context(), userID, fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, service.ErrNotPDF) {
			response.ParamError(ctx, errcode.UnsupportedFile, "仅支持PDF文件")
			return
		}
		response.InternalError(ctx, errcode.PaperUploadFailed, "上传失败")
		return
	}

	// 解析耗时较长，后台执行；请求上下文会随响应取消，这里用独立context
	go func(paperID string) {
		if err := pc.paperService.Process(context.Background(), paperID); err != nil {
			log.Printf("论文[%s]解析失败: %v", paperID, err)
		}
	}(paper.ID)

	response.SuccessWithMessage(ctx, "上传成功，正在解析", gin.H{"paper_id": paper.ID})
}

func (pc *PaperController) List(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "用户验证失败")
		return
	}

	page, pageSize, err := utils.ParsePaginationParams(ctx)
	if err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "分页参数错误")
		return
	}

	sort := ctx.DefaultQuery("sort", "created_at:desc")
	if err := utils.ValidateSortParameter(sort, []string{"created_at", "updated_at", "title", "file_name"}); err != nil {
		response.ParamError(ctx, errcode.ParamValidateError, "排序参数错误")
		return
	}

	total, papers, err := pc.paperService.PageList(userID, page, pageSize, sort)
	if err != nil {
		response.InternalError(ctx, errcode.PaperListFailed, "获取论文列表失败")
		return
	}

	response.PageSuccess(ctx, papers, total)
}

// Search 按关键词搜索自己的论文
func (pc *PaperController) Search(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "用户验证失败")
		return
	}

	key := ctx.Query("key")
	if key == "" {
		response.ParamError(ctx, errcode.ParamBindError, "缺少搜索关键词")
		return
	}

	page, pageSize, err := utils.ParsePaginationParams(ctx)
	if err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "分页参数错误")
		return
	}

	sort := ctx.DefaultQuery("sort", "created_at:desc")
	if err := utils.ValidateSortParameter(sort, []string{"created_at", "updated_at", "title", "file_name"}); err != nil {
		response.ParamError(ctx, errcode.ParamValidateError, "排序参数错误")
		return
	}

	total, papers, err := pc.paperService.Search(userID, key, page, pageSize, sort)
	if err != nil {
		response.InternalError(ctx, errcode.PaperListFailed, "搜索失败")
		return
	}

	response.PageSuccess(ctx, papers, total)
}

func (pc *PaperController) Detail(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "用户验证失败")
		return
	}

	paperID := ctx.Query("paper_id")
	if paperID == "" {
		response.ParamError(ctx, errcode.ParamBindError, "缺少paper_id")
		return
	}

	detail, err := pc.paperService.Detail(ctx.Request.Context(), userID, paperID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaperNotFound):
			response.NotFoundError(ctx, errcode.PaperNotFound, "论文不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.ForbiddenError(ctx, errcode.ForbiddenError, "权限不足")
		default:
			response.InternalError(ctx, errcode.PaperParseFailed, "获取论文详情失败")
		}
		return
	}

	response.Success(ctx, detail)
}

func (pc *PaperController) Download(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "用户验证失败")
		return
	}

	paperID := ctx.Query("paper_id")
	if paperID == "" {
		response.ParamError(ctx, errcode.ParamBindError, "缺少paper_id")
		return
	}

	paper, data, err := pc.paperService.Download(ctx.Request.Context(), userID, paperID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaperNotFound):
			response.NotFoundError(ctx, errcode.PaperNotFound, "论文不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.ForbiddenError(ctx, errcode.ForbiddenError, "权限不足")
		default:
			response.InternalError(ctx, errcode.InternalServerError, "下载失败")
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", paper.FileName))
	ctx.Header("Content-Type", "application/pdf")
	ctx.Header("Content-Length", strconv.Itoa(len(data)))
	ctx.Data(http.StatusOK, "application/pdf", data)
}

func (pc *PaperController) Delete(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "用户验证失败")
		return
	}

	paperID := ctx.Query("paper_id")
	if paperID == "" {
		response.ParamError(ctx, errcode.ParamBindError, "缺少paper_id")
		return
	}

	if err := pc.paperService.Delete(ctx.Request.Context(), userID, paperID); err != nil {
		switch {
		case errors.Is(err, service.ErrPaperNotFound):
			response.NotFoundError(ctx, errcode.PaperNotFound, "论文不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.ForbiddenError(ctx, errcode.ForbiddenError, "权限不足")
		default:
			response.InternalError(ctx, errcode.PaperDeleteFailed, "删除失败")
		}
		return
	}

	response.SuccessWithMessage(ctx, "删除成功", nil)
}

// Retrieve 在论文内容上做向量检索
func (pc *PaperController) Retrieve(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "用户验证失败")
		return
	}

	req := &model.RetrieveRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "参数错误")
		return
	}

	chunks, err := pc.paperService.Retrieve(ctx.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaperNotFound):
			response.NotFoundError(ctx, errcode.PaperNotFound, "论文不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.ForbiddenError(ctx, errcode.ForbiddenError, "权限不足")
		default:
			response.InternalError(ctx, errcode.RetrieveFailed, "检索失败")
		}
		return
	}

	response.Success(ctx, chunks)
}
