package api

import (
	"errors"

	"financials/models"
	"financials/store"

	"github.com/gin-gonic/gin"
)

// UnitHandler 单元处理器
type UnitHandler struct {
	store store.RecordStore
}

// NewUnitHandler 创建单元处理器
func NewUnitHandler(s store.RecordStore) *UnitHandler {
	return &UnitHandler{store: s}
}

// CreateUnitRequest 创建单元请求
type CreateUnitRequest struct {
	Property      uint    `json:"property" binding:"required" example:"1"`
	UnitNumber    int     `json:"unit_number" binding:"required,gte=1" example:"101"`
	SquareFootage float64 `json:"square_footage" binding:"required,gt=0" example:"850"`
}

// List 获取单元列表
// @Summary 获取单元列表
// @Description 返回单元及面积，可通过 property 参数按物业过滤
// @Tags 单元
// @Produce json
// @Param property query int false "物业ID"
// @Success 200 {object} Response{data=[]models.Unit} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/units [get]
func (h *UnitHandler) List(c *gin.Context) {
	propertyID, ok := propertyIDQuery(c, "property")
	if !ok {
		BadRequest(c, "无效的物业ID")
		return
	}
	list, err := h.store.ListUnits(c.Request.Context(), propertyID)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// Create 创建单元
// @Summary 创建单元
// @Description 录入单元面积，同一物业下 unit_number 不能重复
// @Tags 单元
// @Accept json
// @Produce json
// @Param request body CreateUnitRequest true "单元信息"
// @Success 201 {object} Response{data=models.Unit} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "物业不存在"
// @Failure 409 {object} Response "单元已存在"
// @Router /api/units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	u := models.Unit{
		PropertyID:    req.Property,
		UnitNumber:    req.UnitNumber,
		SquareFootage: req.SquareFootage,
	}
	if err := h.store.CreateUnit(c.Request.Context(), &u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			Conflict(c, "该物业下单元号已存在")
			return
		}
		StoreError(c, err, "创建单元失败")
		return
	}
	Created(c, "创建成功", u)
}
