package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"financials/store"
	"financials/upload"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TemplateHandler 上传模板下载处理器
type TemplateHandler struct {
	store store.RecordStore
}

// NewTemplateHandler 创建模板处理器
func NewTemplateHandler(s store.RecordStore) *TemplateHandler {
	return &TemplateHandler{store: s}
}

// Expenses 下载费用模板
// @Summary 下载费用上传模板
// @Description 工作表 Expenses，预填 12 个月的 month/year，其余列留空
// @Tags 模板
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "年份，默认当前年"
// @Success 200 {file} file "Excel文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/templates/expenses [get]
func (h *TemplateHandler) Expenses(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1900 || y > 2100 {
			BadRequest(c, "无效的年份")
			return
		}
		year = y
	}
	data, err := upload.ExpenseTemplate(year)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成模板失败"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=expenses_template_%d.xlsx", year))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Units 下载单元面积模板
// @Summary 下载单元面积上传模板
// @Description 工作表 Units，为指定物业预填名称和 1..户数 的 unit_number
// @Tags 模板
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param property_id query int true "物业ID"
// @Success 200 {file} file "Excel文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "物业不存在"
// @Router /api/templates/units [get]
func (h *TemplateHandler) Units(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("property_id"), 10, 32)
	if err != nil {
		BadRequest(c, "请提供有效的物业ID")
		return
	}
	p, err := h.store.GetProperty(c.Request.Context(), uint(id))
	if err != nil {
		StoreError(c, err, "查询物业失败")
		return
	}
	data, err := upload.UnitTemplate(*p)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成模板失败"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=units_template_%d.xlsx", p.ID))
	c.Data(http.StatusOK, xlsxContentType, data)
}
