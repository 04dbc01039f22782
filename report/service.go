package report

import (
	"context"

	"financials/models"
	"financials/store"

	"go.uber.org/zap"
)

// Request 一次报表请求，所有状态（包括当前选中的物业）都由请求携带
type Request struct {
	Filter  Filter
	Options Options
}

// Service 从存储读取快照，经过滤、面积推导后交给汇总引擎
type Service struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewService 创建报表服务
func NewService(s store.RecordStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, logger: logger}
}

// Summary 生成汇总报表；没有匹配物业时返回空结果而不是错误
func (s *Service) Summary(ctx context.Context, req Request) (*Result, error) {
	if err := req.Filter.Validate(); err != nil {
		return nil, err
	}
	infos, expenses, err := s.load(ctx, req.Filter)
	if err != nil {
		return nil, err
	}
	result, err := Summarize(infos, expenses, req.Options)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("summary computed",
		zap.String("mode", string(result.Mode)),
		zap.String("normalization", string(result.Normalization)),
		zap.Int("properties", len(infos)),
		zap.Int("rows", len(result.Rows)))
	return result, nil
}

// BoxPlot 生成某一类别的箱线图统计
func (s *Service) BoxPlot(ctx context.Context, filter Filter, category string, perSqft bool) ([]BoxStats, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	infos, expenses, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return BoxPlot(infos, expenses, category, perSqft)
}

// Filters 返回可选的过滤值
func (s *Service) Filters(ctx context.Context) (FilterOptions, error) {
	props, err := s.store.ListProperties(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	return AvailableFilters(props), nil
}

func (s *Service) load(ctx context.Context, filter Filter) ([]PropertyInfo, []models.Expense, error) {
	snap, err := store.LoadSnapshot(ctx, s.store)
	if err != nil {
		s.logger.Warn("load snapshot failed", zap.Error(err))
		return nil, nil, err
	}

	matched := filter.Apply(snap.Properties)
	avg := AverageSquareFootage(snap.Units)
	infos := make([]PropertyInfo, 0, len(matched))
	keep := make(map[uint]bool, len(matched))
	for _, p := range matched {
		infos = append(infos, NewPropertyInfo(p, AvgSqftValue(avg, p.ID)))
		keep[p.ID] = true
	}

	expenses := make([]models.Expense, 0, len(snap.Expenses))
	for _, e := range snap.Expenses {
		if keep[e.PropertyID] {
			expenses = append(expenses, e)
		}
	}
	return infos, expenses, nil
}
