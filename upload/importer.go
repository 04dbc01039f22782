package upload

import (
	"financials/store"

	"go.uber.org/zap"
)

// Importer 批量导入物业费用和单元面积
type Importer struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewImporter 创建导入器
func NewImporter(s store.RecordStore, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: s, logger: logger}
}
