package upload

import (
	"fmt"
	"strings"
)

// ValidationError 整批数据校验失败（缺少列或单元格格式错误），此时不写入任何记录
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("上传数据校验失败: %s", strings.Join(e.Problems, "; "))
}

// ItemFailure 单条记录写入失败，不影响同批其他记录
type ItemFailure struct {
	Row    int    `json:"row,omitempty"` // 表格行号（含表头，从 1 开始）
	Item   string `json:"item"`
	Reason string `json:"reason"`
}
