package models

import (
	"fmt"
	"time"
)

// 费用类别（固定九项，顺序即报表列顺序）
const (
	CategoryPayroll        = "payroll"
	CategoryMarketing      = "marketing"
	CategoryAdmin          = "admin"
	CategoryMaintenance    = "maintenance"
	CategoryTurnover       = "turnover"
	CategoryUtilities      = "utilities"
	CategoryTaxes          = "taxes"
	CategoryInsurance      = "insurance"
	CategoryManagementFees = "management_fees"
)

// NumCategories 费用类别数量
const NumCategories = 9

// Categories 按报表列顺序返回全部费用类别
func Categories() []string {
	return []string{
		CategoryPayroll,
		CategoryMarketing,
		CategoryAdmin,
		CategoryMaintenance,
		CategoryTurnover,
		CategoryUtilities,
		CategoryTaxes,
		CategoryInsurance,
		CategoryManagementFees,
	}
}

// CategoryIndex 返回类别在 Categories() 中的下标，未知类别返回 -1
func CategoryIndex(name string) int {
	for i, c := range Categories() {
		if c == name {
			return i
		}
	}
	return -1
}

// CategoryAmounts 九项费用金额，下标与 Categories() 一致
type CategoryAmounts [NumCategories]float64

// Add 逐项相加
func (a CategoryAmounts) Add(b CategoryAmounts) CategoryAmounts {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Expense 物业月度费用记录
// 同一物业同一月份允许存在多条记录，数据库不做唯一约束
type Expense struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	PropertyID     uint      `json:"property" gorm:"index;not null"`
	Month          int       `json:"month" gorm:"not null"`
	Year           int       `json:"year" gorm:"not null;index"`
	Payroll        float64   `json:"payroll" gorm:"not null;default:0"`
	Marketing      float64   `json:"marketing" gorm:"not null;default:0"`
	Admin          float64   `json:"admin" gorm:"not null;default:0"`
	Maintenance    float64   `json:"maintenance" gorm:"not null;default:0"`
	Turnover       float64   `json:"turnover" gorm:"not null;default:0"`
	Utilities      float64   `json:"utilities" gorm:"not null;default:0"`
	Taxes          float64   `json:"taxes" gorm:"not null;default:0"`
	Insurance      float64   `json:"insurance" gorm:"not null;default:0"`
	ManagementFees float64   `json:"management_fees" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// Period 费用所属账期
func (e Expense) Period() Period {
	return Period{Year: e.Year, Month: e.Month}
}

// Amounts 按 Categories() 顺序返回九项金额
func (e Expense) Amounts() CategoryAmounts {
	return CategoryAmounts{
		e.Payroll,
		e.Marketing,
		e.Admin,
		e.Maintenance,
		e.Turnover,
		e.Utilities,
		e.Taxes,
		e.Insurance,
		e.ManagementFees,
	}
}

// SetAmounts 按 Categories() 顺序写入九项金额
func (e *Expense) SetAmounts(a CategoryAmounts) {
	e.Payroll = a[0]
	e.Marketing = a[1]
	e.Admin = a[2]
	e.Maintenance = a[3]
	e.Turnover = a[4]
	e.Utilities = a[5]
	e.Taxes = a[6]
	e.Insurance = a[7]
	e.ManagementFees = a[8]
}

// Period 账期 (year, month)，按时间先后全序
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Before 判断 p 是否早于 o
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// Valid 月份必须在 1..12
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
