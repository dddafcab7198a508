package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docreader/api/response"
	"docreader/service"
	"docreader/types"
)

type DocumentHandler struct {
	extractionSvc *service.ExtractionService
	querySvc      *service.QueryService
}

func NewDocumentHandler(extractionSvc *service.ExtractionService, querySvc *service.QueryService) *DocumentHandler {
	return &DocumentHandler{
		extractionSvc: extractionSvc,
		querySvc:      querySvc,
	}
}

// Upload 上传文档接口，支持一次传多个文件
func (h *DocumentHandler) Upload(c *gin.Context) {
	fmt.Println(">>> [DEBUG] 1. 进入 Handler")
	form, err := c.MultipartForm()
	if err != nil {
		fmt.Println(">>> [DEBUG] error: 表单解析失败", err)
		response.FailWithStatus(c, http.StatusBadRequest, "文件上传失败或格式错误")
		return
	}
	// 1. 获取文件
	files := form.File["file"]
	if len(files) == 0 {
		response.FailWithStatus(c, http.StatusBadRequest, "未接收到文件，请检查参数名是否为 'file'")
		return
	}
	fmt.Printf(">>> [DEBUG] 2. 收到文件列表，共 %d 个文件\n", len(files))

	type uploadItem struct {
		DocID  string                  `json:"doc_id"`
		Result *types.ExtractionResult `json:"result"`
	}

	var succeeded []uploadItem
	var errorFiles []string
	// 2. 调用 Service，单个文件失败不影响其他文件
	for _, file := range files {
		fmt.Printf(">>> [DEBUG] ---> 开始处理文件: %s, 大小: %d\n", file.Filename, file.Size)

		docID, result, err := h.extractionSvc.UploadAndProcess(c.Request.Context(), file)
		if err != nil {
			fmt.Printf(">>> [ERROR] 文件 %s 处理失败: %v\n", file.Filename, err)
			errorFiles = append(errorFiles, file.Filename)
			continue
		}

		succeeded = append(succeeded, uploadItem{DocID: docID, Result: result})
	}

	fmt.Printf(">>> [DEBUG] 3. 批量处理完成，成功 %d 个\n", len(succeeded))

	// 3. 返回结果
	if len(succeeded) == 0 && len(errorFiles) > 0 {
		response.Fail(c, fmt.Sprintf("所有文件处理失败: %v", errorFiles))
		return
	}

	response.Success(c, map[string]any{
		"documents":   succeeded,
		"status":      "indexed",
		"total_count": len(succeeded),
		"fail_files":  errorFiles, // 告诉前端哪些文件失败了
	})
}

// ExtractText 纯文本抽取接口，不落库，方便调试规则
func (h *DocumentHandler) ExtractText(c *gin.Context) {
	var req types.ExtractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWithStatus(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.FailWithStatus(c, http.StatusBadRequest, "参数错误: text 不能为空")
		return
	}

	source := req.Source
	if source == "" {
		source = "inline"
	}

	result := h.extractionSvc.ExtractFromText(req.Text, source)
	response.Success(c, result)
}

// ImportLocal 从服务器本地路径补录文档（批量灌库用）
func (h *DocumentHandler) ImportLocal(c *gin.Context) {
	var req struct {
		Path string `json:"path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Path) == "" {
		response.FailWithStatus(c, http.StatusBadRequest, "参数错误: path 不能为空")
		return
	}

	docID, result, err := h.extractionSvc.ImportLocal(c.Request.Context(), req.Path)
	if err != nil {
		response.Fail(c, err.Error())
		return
	}

	response.Success(c, map[string]any{
		"doc_id": docID,
		"result": result,
	})
}

// Search 混合检索接口
func (h *DocumentHandler) Search(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWithStatus(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	fmt.Printf(">>> [DEBUG] 收到搜索请求: %q\n", req.Query)

	result, err := h.querySvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetDocument 查询单个文档的抽取详情
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	docID := c.Param("doc_id")
	if docID == "" {
		response.FailWithStatus(c, http.StatusBadRequest, "参数错误: doc_id 不能为空")
		return
	}

	detail, err := h.querySvc.GetDocument(c.Request.Context(), docID)
	if err != nil {
		response.FailWithStatus(c, http.StatusNotFound, err.Error())
		return
	}

	response.Success(c, detail)
}

// Health 健康检查
func (h *DocumentHandler) Health(c *gin.Context) {
	response.Success(c, map[string]any{"status": "ok"})
}
