package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"financials/models"
)

// Mode 报表模式
type Mode string

const (
	ModeMonthly    Mode = "Monthly"
	ModeTrailing3  Mode = "T3"
	ModeTrailing12 Mode = "T12"
)

// ParseMode 解析报表模式，大小写不敏感，空字符串默认为 T12
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "T12", "TRAILING12":
		return ModeTrailing12, nil
	case "T3", "TRAILING3":
		return ModeTrailing3, nil
	case "MONTHLY":
		return ModeMonthly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Window 滚动窗口大小，Monthly 返回 0
func (m Mode) Window() int {
	switch m {
	case ModeTrailing3:
		return 3
	case ModeTrailing12:
		return 12
	}
	return 0
}

// Normalization 归一化方式
type Normalization string

const (
	NormalizeNone    Normalization = ""
	NormalizePerUnit Normalization = "per_unit"
	NormalizePerSqft Normalization = "per_sqft"
)

var (
	ErrInvalidMode               = errors.New("无效的报表模式，可选值：T12、T3、Monthly")
	ErrConflictingNormalization = errors.New("per_unit 与 per_sqft 不能同时使用")
)

// NormalizationFrom 把两个开关合并为一种归一化方式
func NormalizationFrom(perUnit, perSqft bool) (Normalization, error) {
	switch {
	case perUnit && perSqft:
		return NormalizeNone, ErrConflictingNormalization
	case perUnit:
		return NormalizePerUnit, nil
	case perSqft:
		return NormalizePerSqft, nil
	}
	return NormalizeNone, nil
}

// Options 报表参数
type Options struct {
	Mode          Mode
	Normalization Normalization
}

// PropertyInfo 参与汇总的物业属性
type PropertyInfo struct {
	ID           uint
	Name         string
	Units        int
	PropertyType string
	Location     string
	AvgSqft      Value
}

// NewPropertyInfo 由物业记录和平均面积构造
func NewPropertyInfo(p models.Property, avgSqft Value) PropertyInfo {
	return PropertyInfo{
		ID:           p.ID,
		Name:         p.Name,
		Units:        p.Units,
		PropertyType: p.PropertyType,
		Location:     p.Location,
		AvgSqft:      avgSqft,
	}
}

// Row 报表中的一行
// Period 仅在 Monthly 模式下有值
type Row struct {
	Property PropertyInfo
	Period   *models.Period
	Records  int
	Values   [models.NumCategories]Value
}

// Value 按类别名取值
func (r Row) Value(category string) Value {
	i := models.CategoryIndex(category)
	if i < 0 {
		return Undefined()
	}
	return r.Values[i]
}

// Result 报表结果
type Result struct {
	Mode          Mode          `json:"mode"`
	Normalization Normalization `json:"normalization,omitempty"`
	Columns       []string      `json:"columns"`
	Rows          []Row         `json:"rows"`
}

// Empty 过滤后没有任何行
func (r *Result) Empty() bool {
	return len(r.Rows) == 0
}

// Summarize 汇总费用记录
// 滚动模式下每个物业一行（没有费用的物业各项为 0）；Monthly 模式下每个 (物业, 账期) 一行，
// 同一账期的多条记录相加。
func Summarize(props []PropertyInfo, expenses []models.Expense, opts Options) (*Result, error) {
	if opts.Mode == "" {
		opts.Mode = ModeTrailing12
	}
	if opts.Mode != ModeMonthly && opts.Mode.Window() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, opts.Mode)
	}

	byProperty := groupByProperty(expenses)
	result := &Result{
		Mode:          opts.Mode,
		Normalization: opts.Normalization,
		Columns:       Columns(opts.Mode),
		Rows:          []Row{},
	}

	for _, p := range props {
		records := byProperty[p.ID]
		sortByPeriod(records)

		if opts.Mode == ModeMonthly {
			for _, row := range monthlyRows(p, records) {
				result.Rows = append(result.Rows, normalize(row, opts.Normalization))
			}
			continue
		}

		result.Rows = append(result.Rows, normalize(trailingRow(p, records, opts.Mode.Window()), opts.Normalization))
	}
	return result, nil
}

// TrailingSum 对按账期排序后的最后 n 条记录逐项求和，不足 n 条时对全部求和
func TrailingSum(records []models.Expense, n int) (models.CategoryAmounts, int) {
	sorted := append([]models.Expense(nil), records...)
	sortByPeriod(sorted)
	return sumTail(sorted, n)
}

// sumTail 要求 sorted 已按账期升序
func sumTail(sorted []models.Expense, n int) (models.CategoryAmounts, int) {
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	var sum models.CategoryAmounts
	for _, e := range sorted {
		sum = sum.Add(e.Amounts())
	}
	return sum, len(sorted)
}

func trailingRow(p PropertyInfo, sorted []models.Expense, n int) Row {
	sum, count := sumTail(sorted, n)
	return newRow(p, nil, count, sum)
}

func monthlyRows(p PropertyInfo, sorted []models.Expense) []Row {
	var rows []Row
	for i := 0; i < len(sorted); {
		period := sorted[i].Period()
		var sum models.CategoryAmounts
		j := i
		for ; j < len(sorted) && sorted[j].Period() == period; j++ {
			sum = sum.Add(sorted[j].Amounts())
		}
		pp := period
		rows = append(rows, newRow(p, &pp, j-i, sum))
		i = j
	}
	return rows
}

func newRow(p PropertyInfo, period *models.Period, records int, sum models.CategoryAmounts) Row {
	row := Row{Property: p, Period: period, Records: records}
	for i, v := range sum {
		row.Values[i] = Defined(v)
	}
	return row
}

func normalize(row Row, n Normalization) Row {
	var divisor Value
	switch n {
	case NormalizePerUnit:
		divisor = Defined(float64(row.Property.Units))
	case NormalizePerSqft:
		divisor = row.Property.AvgSqft
	default:
		return row
	}
	for i := range row.Values {
		row.Values[i] = row.Values[i].Div(divisor)
	}
	return row
}

func groupByProperty(expenses []models.Expense) map[uint][]models.Expense {
	grouped := make(map[uint][]models.Expense)
	for _, e := range expenses {
		grouped[e.PropertyID] = append(grouped[e.PropertyID], e)
	}
	return grouped
}

// sortByPeriod 按账期升序，同账期按 ID 保持录入顺序
func sortByPeriod(records []models.Expense) {
	sort.SliceStable(records, func(i, j int) bool {
		pi, pj := records[i].Period(), records[j].Period()
		if pi != pj {
			return pi.Before(pj)
		}
		return records[i].ID < records[j].ID
	})
}
