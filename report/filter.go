package report

import (
	"errors"
	"fmt"

	"financials/models"
)

// Filter 物业过滤条件，三个条件取交集
// Types/Locations 为 nil 表示不限制；MinUnits/MaxUnits 为 nil 表示该侧不设边界
type Filter struct {
	Types       []string `json:"property_types,omitempty"`
	Locations   []string `json:"locations,omitempty"`
	MinUnits    *int     `json:"min_units,omitempty"`
	MaxUnits    *int     `json:"max_units,omitempty"`
	PropertyIDs []uint   `json:"property_ids,omitempty"`
}

// ErrInvalidFilter 过滤条件自相矛盾
var ErrInvalidFilter = errors.New("过滤条件无效")

// Validate 检查户数区间
func (f Filter) Validate() error {
	if f.MinUnits != nil && f.MaxUnits != nil && *f.MinUnits > *f.MaxUnits {
		return fmt.Errorf("%w: min_units(%d) > max_units(%d)", ErrInvalidFilter, *f.MinUnits, *f.MaxUnits)
	}
	return nil
}

// Match 判断单个物业是否满足条件
func (f Filter) Match(p models.Property) bool {
	if f.Types != nil && !contains(f.Types, p.PropertyType) {
		return false
	}
	if f.Locations != nil && !contains(f.Locations, p.Location) {
		return false
	}
	if f.MinUnits != nil && p.Units < *f.MinUnits {
		return false
	}
	if f.MaxUnits != nil && p.Units > *f.MaxUnits {
		return false
	}
	if len(f.PropertyIDs) > 0 && !containsID(f.PropertyIDs, p.ID) {
		return false
	}
	return true
}

// Apply 返回满足条件的物业，保持原有顺序；结果可以为空
func (f Filter) Apply(props []models.Property) []models.Property {
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// FilterOptions 可选的过滤值，即默认"全选"状态
type FilterOptions struct {
	PropertyTypes []string `json:"property_types"`
	Locations     []string `json:"locations"`
	MinUnits      int      `json:"min_units"`
	MaxUnits      int      `json:"max_units"`
}

// AvailableFilters 按出现顺序收集去重后的类型、位置以及户数范围
func AvailableFilters(props []models.Property) FilterOptions {
	opts := FilterOptions{PropertyTypes: []string{}, Locations: []string{}}
	for i, p := range props {
		if !contains(opts.PropertyTypes, p.PropertyType) {
			opts.PropertyTypes = append(opts.PropertyTypes, p.PropertyType)
		}
		if !contains(opts.Locations, p.Location) {
			opts.Locations = append(opts.Locations, p.Location)
		}
		if i == 0 || p.Units < opts.MinUnits {
			opts.MinUnits = p.Units
		}
		if i == 0 || p.Units > opts.MaxUnits {
			opts.MaxUnits = p.Units
		}
	}
	return opts
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsID(list []uint, id uint) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
