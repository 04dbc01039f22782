package api

import (
	"strconv"
	"strings"

	"financials/models"
	"financials/store"

	"github.com/gin-gonic/gin"
)

// PropertyHandler 物业处理器
type PropertyHandler struct {
	store store.RecordStore
}

// NewPropertyHandler 创建物业处理器
func NewPropertyHandler(s store.RecordStore) *PropertyHandler {
	return &PropertyHandler{store: s}
}

// CreatePropertyRequest 创建物业请求
type CreatePropertyRequest struct {
	Name         string `json:"name" binding:"required,max=200" example:"Maple Court"`
	Units        int    `json:"units" binding:"required,gte=1" example:"24"`
	PropertyType string `json:"property_type" binding:"required,max=50" example:"Garden"`
	Location     string `json:"location" binding:"required,max=200" example:"Austin"`
}

// List 获取物业列表
// @Summary 获取物业列表
// @Description 返回全部物业，按 ID 升序，不含费用明细
// @Tags 物业
// @Produce json
// @Success 200 {object} Response{data=[]models.Property} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	list, err := h.store.ListProperties(c.Request.Context())
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// Create 创建物业
// @Summary 创建物业
// @Description 手动录入一个物业
// @Tags 物业
// @Accept json
// @Produce json
// @Param request body CreatePropertyRequest true "物业信息"
// @Success 201 {object} Response{data=models.Property} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	p := models.Property{
		Name:         strings.TrimSpace(req.Name),
		Units:        req.Units,
		PropertyType: strings.TrimSpace(req.PropertyType),
		Location:     strings.TrimSpace(req.Location),
	}
	if p.Name == "" {
		BadRequest(c, "物业名称不能为空")
		return
	}
	if err := h.store.CreateProperty(c.Request.Context(), &p); err != nil {
		StoreError(c, err, "创建物业失败")
		return
	}
	Created(c, "创建成功", p)
}

// Get 获取物业详情
// @Summary 获取物业详情
// @Description 返回物业及其全部费用记录（按账期升序）
// @Tags 物业
// @Produce json
// @Param id path int true "物业ID"
// @Success 200 {object} Response{data=models.Property} "获取成功"
// @Failure 404 {object} Response "物业不存在"
// @Router /api/properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	p, err := h.store.GetProperty(c.Request.Context(), uint(id))
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, p)
}

// propertyIDQuery 解析可选的 ?property= 过滤参数
func propertyIDQuery(c *gin.Context, key string) (*uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, false
	}
	v := uint(id)
	return &v, true
}
