package report

import (
	"encoding/json"

	"financials/models"
)

// 报表固定列
const (
	ColumnPropertyID   = "property_id"
	ColumnPropertyName = "property_name"
	ColumnUnits        = "units"
	ColumnPropertyType = "property_type"
	ColumnLocation     = "location"
	ColumnYear         = "year"
	ColumnMonth        = "month"
	ColumnAvgSqft      = "avg_sqft"
)

// Columns 返回指定模式下的列顺序
func Columns(mode Mode) []string {
	cols := []string{ColumnPropertyID, ColumnPropertyName, ColumnUnits, ColumnPropertyType, ColumnLocation}
	if mode == ModeMonthly {
		cols = append(cols, ColumnYear, ColumnMonth)
	}
	cols = append(cols, ColumnAvgSqft)
	return append(cols, models.Categories()...)
}

// Map 把行转为 列名 -> 值 的映射，未定义数值为 "N/A"
func (r Row) Map() map[string]interface{} {
	m := map[string]interface{}{
		ColumnPropertyID:   r.Property.ID,
		ColumnPropertyName: r.Property.Name,
		ColumnUnits:        r.Property.Units,
		ColumnPropertyType: r.Property.PropertyType,
		ColumnLocation:     r.Property.Location,
		ColumnAvgSqft:      r.Property.AvgSqft.Interface(),
	}
	if r.Period != nil {
		m[ColumnYear] = r.Period.Year
		m[ColumnMonth] = r.Period.Month
	}
	for i, c := range models.Categories() {
		m[c] = r.Values[i].Interface()
	}
	return m
}

// MarshalJSON 行以扁平映射输出
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// Maps 返回全部行的映射形式
func (r *Result) Maps() []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, row.Map())
	}
	return rows
}
