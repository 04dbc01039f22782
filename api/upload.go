package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"financials/models"
	"financials/store"
	"financials/upload"

	"github.com/gin-gonic/gin"
)

// UploadHandler 批量上传处理器
type UploadHandler struct {
	store    store.RecordStore
	importer *upload.Importer
	maxBytes int64
}

// NewUploadHandler 创建批量上传处理器，maxFileMB<=0 表示不限制大小
func NewUploadHandler(s store.RecordStore, importer *upload.Importer, maxFileMB int) *UploadHandler {
	return &UploadHandler{store: s, importer: importer, maxBytes: int64(maxFileMB) << 20}
}

// openTable 读取表单中的 file 字段并解析为表格，失败时已写入响应
func (h *UploadHandler) openTable(c *gin.Context, sheet string) (*upload.Table, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "请上传文件")
		return nil, false
	}
	if h.maxBytes > 0 && header.Size > h.maxBytes {
		Error(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("文件大小不能超过 %dMB", h.maxBytes>>20))
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		BadRequest(c, "读取文件失败")
		return nil, false
	}
	defer file.Close()

	table, err := upload.ReadTable(file, header.Filename, sheet)
	if err != nil {
		if errors.Is(err, upload.ErrUnsupportedFormat) {
			BadRequest(c, err.Error())
			return nil, false
		}
		BadRequest(c, "解析文件失败: "+err.Error())
		return nil, false
	}
	return table, true
}

// Expenses 批量上传物业及费用
// @Summary 批量上传费用
// @Description 上传 xlsx（工作表 Expenses）或 csv。整表先校验，有错误则不写入任何数据；按 (名称, 户数, 类型, 地区) 分组创建物业，再逐条创建费用
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "费用表格"
// @Success 200 {object} Response{data=upload.ExpenseImportResult} "导入完成"
// @Failure 400 {object} Response{data=[]string} "校验失败"
// @Router /api/uploads/expenses [post]
func (h *UploadHandler) Expenses(c *gin.Context) {
	table, ok := h.openTable(c, upload.ExpensesSheet)
	if !ok {
		return
	}
	rows, err := upload.ParseExpenseRows(table)
	if err != nil {
		validationError(c, err)
		return
	}
	result := h.importer.ImportExpenses(c.Request.Context(), rows)
	SuccessWithMessage(c, "导入完成", result)
}

// Units 批量上传单元面积
// @Summary 批量上传单元面积
// @Description 上传 xlsx（工作表 Units）或 csv，已存在的 (物业, unit_number) 跳过，重复上传结果不变。传 property_id 时只处理该物业的行
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "单元表格"
// @Param property_id formData int false "只处理该物业"
// @Success 200 {object} Response{data=upload.UnitReconcileResult} "合并完成"
// @Failure 400 {object} Response "校验失败"
// @Failure 404 {object} Response "物业不存在"
// @Router /api/uploads/units [post]
func (h *UploadHandler) Units(c *gin.Context) {
	var scope *models.Property
	if raw := strings.TrimSpace(c.PostForm("property_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			BadRequest(c, "无效的物业ID")
			return
		}
		p, err := h.store.GetProperty(c.Request.Context(), uint(id))
		if err != nil {
			StoreError(c, err, "查询物业失败")
			return
		}
		scope = p
	}

	table, ok := h.openTable(c, upload.UnitsSheet)
	if !ok {
		return
	}
	scopeName := ""
	if scope != nil {
		scopeName = scope.Name
	}
	rows, failures, err := upload.ParseUnitRows(table, scopeName)
	if err != nil {
		validationError(c, err)
		return
	}
	result, err := h.importer.ReconcileUnits(c.Request.Context(), rows, scope)
	if err != nil {
		StoreError(c, err, "合并单元失败")
		return
	}
	result.Failed = append(failures, result.Failed...)
	SuccessWithMessage(c, "合并完成", result)
}

func validationError(c *gin.Context, err error) {
	var verr *upload.ValidationError
	if errors.As(err, &verr) {
		ErrorWithData(c, http.StatusBadRequest, "上传数据校验失败", verr.Problems)
		return
	}
	BadRequest(c, err.Error())
}
