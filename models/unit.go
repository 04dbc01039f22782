package models

import (
	"time"
)

// Unit 物业下的单元，(property_id, unit_number) 唯一
type Unit struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PropertyID    uint      `json:"property" gorm:"not null;uniqueIndex:idx_units_property_number"`
	UnitNumber    int       `json:"unit_number" gorm:"not null;uniqueIndex:idx_units_property_number"`
	SquareFootage float64   `json:"square_footage" gorm:"not null"` // 面积（平方英尺）
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Unit) TableName() string {
	return "units"
}
