package models

import (
	"time"
)

// Property 物业模型
type Property struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:200;not null;index"`
	Units        int       `json:"units" gorm:"not null"`                     // 户数
	PropertyType string    `json:"property_type" gorm:"size:50;not null;index"` // 物业类型，如 Garden、High Rise
	Location     string    `json:"location" gorm:"size:200;not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Expenses     []Expense `json:"expenses,omitempty" gorm:"foreignKey:PropertyID"`
}

// TableName 设置表名
func (Property) TableName() string {
	return "properties"
}

// PropertyTypes 录入表单中提供的物业类型，物业类型本身是自由文本
func PropertyTypes() []string {
	return []string{"Garden", "High Rise", "Mid Rise", "Townhouse", "Other"}
}
