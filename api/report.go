package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"financials/models"
	"financials/report"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ReportHandler 报表处理器
type ReportHandler struct {
	svc *report.Service
}

// NewReportHandler 创建报表处理器
func NewReportHandler(svc *report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// ReportQuery 报表查询参数
// property_type、location、property_id 可重复传递
type ReportQuery struct {
	Mode         string   `form:"mode"`
	PerUnit      bool     `form:"per_unit"`
	PerSqft      bool     `form:"per_sqft"`
	PropertyType []string `form:"property_type"`
	Location     []string `form:"location"`
	MinUnits     *int     `form:"min_units"`
	MaxUnits     *int     `form:"max_units"`
	PropertyID   []uint   `form:"property_id"`
}

// Filter 转换为报表过滤条件
func (q ReportQuery) Filter() report.Filter {
	return report.Filter{
		Types:       q.PropertyType,
		Locations:   q.Location,
		MinUnits:    q.MinUnits,
		MaxUnits:    q.MaxUnits,
		PropertyIDs: q.PropertyID,
	}
}

// Request 转换为报表请求
func (q ReportQuery) Request() (report.Request, error) {
	mode, err := report.ParseMode(q.Mode)
	if err != nil {
		return report.Request{}, err
	}
	norm, err := report.NormalizationFrom(q.PerUnit, q.PerSqft)
	if err != nil {
		return report.Request{}, err
	}
	return report.Request{
		Filter:  q.Filter(),
		Options: report.Options{Mode: mode, Normalization: norm},
	}, nil
}

func (h *ReportHandler) bindRequest(c *gin.Context) (report.Request, bool) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "查询参数错误: "+err.Error())
		return report.Request{}, false
	}
	req, err := q.Request()
	if err != nil {
		BadRequest(c, err.Error())
		return report.Request{}, false
	}
	if err := req.Filter.Validate(); err != nil {
		BadRequest(c, err.Error())
		return report.Request{}, false
	}
	return req, true
}

// Filters 获取可选过滤值
// @Summary 获取报表过滤选项
// @Description 返回已有的物业类型、地区以及户数范围
// @Tags 报表
// @Produce json
// @Success 200 {object} Response{data=report.FilterOptions} "获取成功"
// @Router /api/reports/filters [get]
func (h *ReportHandler) Filters(c *gin.Context) {
	opts, err := h.svc.Filters(c.Request.Context())
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, opts)
}

// Summary 获取费用汇总报表
// @Summary 费用汇总报表
// @Description 按 T12、T3 或 Monthly 汇总九项费用，可按户数或面积归一化，未定义的值显示为 "N/A"
// @Tags 报表
// @Produce json
// @Param mode query string false "报表模式 T12/T3/Monthly，默认 T12"
// @Param per_unit query bool false "按户数归一化"
// @Param per_sqft query bool false "按平均面积归一化"
// @Param property_type query []string false "物业类型" collectionFormat(multi)
// @Param location query []string false "地区" collectionFormat(multi)
// @Param min_units query int false "最小户数"
// @Param max_units query int false "最大户数"
// @Param property_id query []int false "物业ID" collectionFormat(multi)
// @Success 200 {object} Response{data=report.Result} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	result, err := h.svc.Summary(c.Request.Context(), req)
	if err != nil {
		h.summaryError(c, err)
		return
	}
	if result.Empty() {
		SuccessWithMessage(c, "没有符合条件的数据", result)
		return
	}
	Success(c, result)
}

// ExportExcel 导出汇总报表
// @Summary 导出汇总报表为Excel
// @Description 参数与汇总报表相同，金额按 "$1,234" 格式，面积保留一位小数
// @Tags 报表
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param mode query string false "报表模式 T12/T3/Monthly，默认 T12"
// @Param per_unit query bool false "按户数归一化"
// @Param per_sqft query bool false "按平均面积归一化"
// @Param property_type query []string false "物业类型" collectionFormat(multi)
// @Param location query []string false "地区" collectionFormat(multi)
// @Param min_units query int false "最小户数"
// @Param max_units query int false "最大户数"
// @Param property_id query []int false "物业ID" collectionFormat(multi)
// @Success 200 {file} file "Excel文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/reports/summary/export [get]
func (h *ReportHandler) ExportExcel(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	result, err := h.svc.Summary(c.Request.Context(), req)
	if err != nil {
		h.summaryError(c, err)
		return
	}

	data, err := summaryWorkbook(result)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}
	filename := fmt.Sprintf("expense_summary_%s_%s.xlsx", strings.ToLower(string(result.Mode)), time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// BoxPlot 获取某类别的箱线图统计
// @Summary 费用箱线图
// @Description 按物业统计某一类别在各月记录上的分布，per_sqft 时缺少面积的物业 available=false
// @Tags 报表
// @Produce json
// @Param category query string true "费用类别，如 payroll"
// @Param per_sqft query bool false "按平均面积归一化"
// @Param property_type query []string false "物业类型" collectionFormat(multi)
// @Param location query []string false "地区" collectionFormat(multi)
// @Param min_units query int false "最小户数"
// @Param max_units query int false "最大户数"
// @Param property_id query []int false "物业ID" collectionFormat(multi)
// @Success 200 {object} Response{data=[]report.BoxStats} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/reports/boxplot [get]
func (h *ReportHandler) BoxPlot(c *gin.Context) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "查询参数错误: "+err.Error())
		return
	}
	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		BadRequest(c, "请提供费用类别")
		return
	}
	boxes, err := h.svc.BoxPlot(c.Request.Context(), q.Filter(), category, q.PerSqft)
	if err != nil {
		if errors.Is(err, report.ErrUnknownCategory) {
			BadRequest(c, err.Error())
			return
		}
		h.summaryError(c, err)
		return
	}
	Success(c, boxes)
}

// summaryError 过滤条件错误返回 400，其余按存储错误处理
func (h *ReportHandler) summaryError(c *gin.Context, err error) {
	if errors.Is(err, report.ErrInvalidMode) || errors.Is(err, report.ErrConflictingNormalization) || errors.Is(err, report.ErrInvalidFilter) {
		BadRequest(c, err.Error())
		return
	}
	StoreError(c, err, "生成报表失败")
}

// summaryWorkbook 把汇总结果写入带表头样式的工作表
func summaryWorkbook(result *report.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Summary"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	for i, col := range result.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	last, _ := excelize.ColumnNumberToName(len(result.Columns))
	f.SetColWidth(sheetName, "A", last, 16)

	for r, row := range result.Rows {
		values := row.Map()
		for i, col := range result.Columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheetName, cell, exportCell(col, row, values[col]))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportCell 类别列按金额格式化，平均面积保留一位小数
func exportCell(col string, row report.Row, raw interface{}) interface{} {
	switch {
	case col == report.ColumnAvgSqft:
		return report.FormatSqft(row.Property.AvgSqft)
	case models.CategoryIndex(col) >= 0:
		return report.FormatCurrency(row.Value(col))
	}
	return raw
}
