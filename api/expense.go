package api

import (
	"financials/models"
	"financials/store"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 费用记录处理器
type ExpenseHandler struct {
	store store.RecordStore
}

// NewExpenseHandler 创建费用记录处理器
func NewExpenseHandler(s store.RecordStore) *ExpenseHandler {
	return &ExpenseHandler{store: s}
}

// CreateExpenseRequest 创建费用记录请求
// 同一物业同一账期允许重复录入，汇总时相加
type CreateExpenseRequest struct {
	Property       uint    `json:"property" binding:"required" example:"1"`
	Month          int     `json:"month" binding:"required,gte=1,lte=12" example:"1"`
	Year           int     `json:"year" binding:"required,gte=1900,lte=2100" example:"2024"`
	Payroll        float64 `json:"payroll" binding:"gte=0" example:"12000"`
	Marketing      float64 `json:"marketing" binding:"gte=0" example:"800"`
	Admin          float64 `json:"admin" binding:"gte=0" example:"1500"`
	Maintenance    float64 `json:"maintenance" binding:"gte=0" example:"3000"`
	Turnover       float64 `json:"turnover" binding:"gte=0" example:"600"`
	Utilities      float64 `json:"utilities" binding:"gte=0" example:"4200"`
	Taxes          float64 `json:"taxes" binding:"gte=0" example:"9000"`
	Insurance      float64 `json:"insurance" binding:"gte=0" example:"2500"`
	ManagementFees float64 `json:"management_fees" binding:"gte=0" example:"3100"`
}

// List 获取费用记录
// @Summary 获取费用记录
// @Description 返回全部费用记录，可通过 property 参数按物业过滤
// @Tags 费用
// @Produce json
// @Param property query int false "物业ID"
// @Success 200 {object} Response{data=[]models.Expense} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	propertyID, ok := propertyIDQuery(c, "property")
	if !ok {
		BadRequest(c, "无效的物业ID")
		return
	}
	list, err := h.store.ListExpenses(c.Request.Context(), propertyID)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// Create 创建费用记录
// @Summary 创建费用记录
// @Description 为物业录入一个月的九项费用
// @Tags 费用
// @Accept json
// @Produce json
// @Param request body CreateExpenseRequest true "费用信息"
// @Success 201 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "物业不存在"
// @Router /api/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	e := models.Expense{
		PropertyID:     req.Property,
		Month:          req.Month,
		Year:           req.Year,
		Payroll:        req.Payroll,
		Marketing:      req.Marketing,
		Admin:          req.Admin,
		Maintenance:    req.Maintenance,
		Turnover:       req.Turnover,
		Utilities:      req.Utilities,
		Taxes:          req.Taxes,
		Insurance:      req.Insurance,
		ManagementFees: req.ManagementFees,
	}
	if err := h.store.CreateExpense(c.Request.Context(), &e); err != nil {
		StoreError(c, err, "创建费用记录失败")
		return
	}
	Created(c, "创建成功", e)
}
