package store

import (
	"context"
	"errors"
	"fmt"

	"financials/models"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicate 违反唯一约束，例如同一物业下重复的 unit_number
	ErrDuplicate = errors.New("记录已存在")
	// ErrRejected 存储层拒绝写入（校验失败、约束冲突以外的错误等）
	ErrRejected = errors.New("存储层拒绝请求")
)

// OpError 带操作名的失败值，所有数据访问失败都以它返回给调用方
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// RecordStore 物业、费用、单元三类记录的存取接口
// propertyID 为 nil 时返回全部记录
type RecordStore interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id uint) (*models.Property, error)
	CreateProperty(ctx context.Context, p *models.Property) error
	ListExpenses(ctx context.Context, propertyID *uint) ([]models.Expense, error)
	CreateExpense(ctx context.Context, e *models.Expense) error
	ListUnits(ctx context.Context, propertyID *uint) ([]models.Unit, error)
	CreateUnit(ctx context.Context, u *models.Unit) error
}

// Snapshot 一次报表计算读取的完整数据
type Snapshot struct {
	Properties []models.Property
	Expenses   []models.Expense
	Units      []models.Unit
}

// LoadSnapshot 依次读取全部物业、费用和单元，任一失败即返回
func LoadSnapshot(ctx context.Context, s RecordStore) (*Snapshot, error) {
	props, err := s.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.ListExpenses(ctx, nil)
	if err != nil {
		return nil, err
	}
	units, err := s.ListUnits(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Properties: props, Expenses: expenses, Units: units}, nil
}
