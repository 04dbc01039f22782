package store

import (
	"context"
	"errors"
	"strings"

	"financials/models"

	"gorm.io/gorm"
)

// GormStore 基于 gorm 的 RecordStore 实现
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 gorm 存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ListProperties 按 ID 升序返回全部物业（不含费用明细）
func (s *GormStore) ListProperties(ctx context.Context) ([]models.Property, error) {
	var list []models.Property
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, opErr("list properties", err)
	}
	return list, nil
}

// GetProperty 获取物业及其全部费用记录
func (s *GormStore) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	err := s.db.WithContext(ctx).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB {
			return db.Order("year ASC, month ASC, id ASC")
		}).
		First(&p, id).Error
	if err != nil {
		return nil, opErr("get property", translate(err))
	}
	return &p, nil
}

// CreateProperty 创建物业
func (s *GormStore) CreateProperty(ctx context.Context, p *models.Property) error {
	if err := s.db.WithContext(ctx).Omit("Expenses").Create(p).Error; err != nil {
		return opErr("create property", translate(err))
	}
	return nil
}

// ListExpenses 返回费用记录，可按物业过滤
func (s *GormStore) ListExpenses(ctx context.Context, propertyID *uint) ([]models.Expense, error) {
	query := s.db.WithContext(ctx).Model(&models.Expense{})
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}
	var list []models.Expense
	if err := query.Order("id ASC").Find(&list).Error; err != nil {
		return nil, opErr("list expenses", err)
	}
	return list, nil
}

// CreateExpense 创建费用记录，所属物业必须存在
func (s *GormStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if err := s.requireProperty(ctx, e.PropertyID); err != nil {
		return opErr("create expense", err)
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return opErr("create expense", translate(err))
	}
	return nil
}

// ListUnits 返回单元记录，可按物业过滤
func (s *GormStore) ListUnits(ctx context.Context, propertyID *uint) ([]models.Unit, error) {
	query := s.db.WithContext(ctx).Model(&models.Unit{})
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}
	var list []models.Unit
	if err := query.Order("property_id ASC, unit_number ASC").Find(&list).Error; err != nil {
		return nil, opErr("list units", err)
	}
	return list, nil
}

// CreateUnit 创建单元，(property, unit_number) 冲突时返回 ErrDuplicate
func (s *GormStore) CreateUnit(ctx context.Context, u *models.Unit) error {
	if err := s.requireProperty(ctx, u.PropertyID); err != nil {
		return opErr("create unit", err)
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return opErr("create unit", translate(err))
	}
	return nil
}

func (s *GormStore) requireProperty(ctx context.Context, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// translate 把 gorm / 驱动错误归类为本包的哨兵错误
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return ErrDuplicate
	default:
		return errors.Join(ErrRejected, err)
	}
}

// isUniqueViolation 兼容未开启 TranslateError 的方言
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key value") // postgres
}
