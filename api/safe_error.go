package api

import (
	"errors"
	"net/http"

	"financials/config"
	"financials/store"

	"github.com/gin-gonic/gin"
)

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// StoreError 把存储层失败映射为 HTTP 状态码
func StoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, "记录不存在")
	case errors.Is(err, store.ErrDuplicate):
		Conflict(c, "记录已存在")
	default:
		Error(c, http.StatusInternalServerError, SafeErrorMessage(err, fallback))
	}
}
