package upload

import (
	"context"
	"fmt"

	"financials/models"

	"go.uber.org/zap"
)

// 费用上传模板中标识物业的四列
const (
	ColPropertyName = "property_name"
	ColUnits        = "units"
	ColPropertyType = "property_type"
	ColLocation     = "location"
	ColMonth        = "month"
	ColYear         = "year"
)

// 年份范围，与手动录入接口一致
const (
	MinYear = 1900
	MaxYear = 2100
)

// ExpenseColumns 费用上传模板的全部必需列
func ExpenseColumns() []string {
	cols := []string{ColPropertyName, ColUnits, ColPropertyType, ColLocation}
	cols = append(cols, models.Categories()...)
	return append(cols, ColMonth, ColYear)
}

// ExpenseRow 解析后的一行费用数据
type ExpenseRow struct {
	Row          int
	PropertyName string
	Units        int
	PropertyType string
	Location     string
	Month        int
	Year         int
	Amounts      models.CategoryAmounts
}

type propertyKey struct {
	name, propertyType, location string
	units                        int
}

func (r ExpenseRow) key() propertyKey {
	return propertyKey{name: r.PropertyName, units: r.Units, propertyType: r.PropertyType, location: r.Location}
}

// PropertyImport 单个物业的导入结果
type PropertyImport struct {
	PropertyName    string        `json:"property_name"`
	PropertyID      uint          `json:"property_id,omitempty"`
	ExpensesCreated int           `json:"expenses_created"`
	ExpensesSkipped int           `json:"expenses_skipped"`
	Error           string        `json:"error,omitempty"`
	Failures        []ItemFailure `json:"failures,omitempty"`
}

// ExpenseImportResult 费用批量导入结果
type ExpenseImportResult struct {
	Properties []PropertyImport `json:"properties"`
}

// ParseExpenseRows 校验整张表格；任一行格式错误则整批失败，不写入任何数据
func ParseExpenseRows(t *Table) ([]ExpenseRow, error) {
	if err := t.RequireColumns(ExpenseColumns()...); err != nil {
		return nil, err
	}
	if len(t.Rows) == 0 {
		return nil, &ValidationError{Problems: []string{"文件中没有数据行"}}
	}

	var (
		rows     []ExpenseRow
		problems []string
	)
	for i, raw := range t.Rows {
		rowNo := RowNumber(i)
		row, errs := parseExpenseRow(t, raw)
		row.Row = rowNo
		for _, e := range errs {
			problems = append(problems, fmt.Sprintf("第 %d 行: %s", rowNo, e))
		}
		rows = append(rows, row)
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return rows, nil
}

func parseExpenseRow(t *Table, raw []string) (ExpenseRow, []string) {
	var (
		row  ExpenseRow
		errs []string
		err  error
	)
	row.PropertyName = t.Cell(raw, ColPropertyName)
	row.PropertyType = t.Cell(raw, ColPropertyType)
	row.Location = t.Cell(raw, ColLocation)
	if row.PropertyName == "" {
		errs = append(errs, "property_name 不能为空")
	}

	if row.Units, err = parseInt(t.Cell(raw, ColUnits)); err != nil {
		errs = append(errs, "units "+err.Error())
	} else if row.Units < 1 {
		errs = append(errs, fmt.Sprintf("units 必须为正整数，实际为 %d", row.Units))
	}
	if row.Month, err = parseInt(t.Cell(raw, ColMonth)); err != nil {
		errs = append(errs, "month "+err.Error())
	} else if !(models.Period{Month: row.Month}).Valid() {
		errs = append(errs, fmt.Sprintf("month 必须在 1-12 之间，实际为 %d", row.Month))
	}
	if row.Year, err = parseInt(t.Cell(raw, ColYear)); err != nil {
		errs = append(errs, "year "+err.Error())
	} else if row.Year < MinYear || row.Year > MaxYear {
		errs = append(errs, fmt.Sprintf("year 必须在 %d-%d 之间，实际为 %d", MinYear, MaxYear, row.Year))
	}
	for i, c := range models.Categories() {
		v, err := parseNumber(t.Cell(raw, c))
		if err != nil {
			errs = append(errs, c+" "+err.Error())
			continue
		}
		if v < 0 {
			errs = append(errs, c+" 不能为负数")
			continue
		}
		row.Amounts[i] = v
	}
	return row, errs
}

// ImportExpenses 按 (property_name, units, property_type, location) 分组，
// 每组先创建物业再逐条创建费用。物业创建失败时跳过该组全部费用；单条费用失败只记录，不中断。
func (im *Importer) ImportExpenses(ctx context.Context, rows []ExpenseRow) *ExpenseImportResult {
	var order []propertyKey
	groups := make(map[propertyKey][]ExpenseRow)
	for _, r := range rows {
		k := r.key()
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	result := &ExpenseImportResult{Properties: make([]PropertyImport, 0, len(order))}
	for _, k := range order {
		result.Properties = append(result.Properties, im.importProperty(ctx, k, groups[k]))
	}
	return result
}

func (im *Importer) importProperty(ctx context.Context, k propertyKey, rows []ExpenseRow) PropertyImport {
	out := PropertyImport{PropertyName: k.name}
	prop := &models.Property{
		Name:         k.name,
		Units:        k.units,
		PropertyType: k.propertyType,
		Location:     k.location,
	}
	if err := im.store.CreateProperty(ctx, prop); err != nil {
		im.logger.Warn("create property failed, skipping its expenses",
			zap.String("property", k.name), zap.Int("rows", len(rows)), zap.Error(err))
		out.Error = fmt.Sprintf("创建物业 %s 失败: %v", k.name, err)
		out.ExpensesSkipped = len(rows)
		return out
	}
	out.PropertyID = prop.ID

	for _, r := range rows {
		e := &models.Expense{PropertyID: prop.ID, Month: r.Month, Year: r.Year}
		e.SetAmounts(r.Amounts)
		if err := im.store.CreateExpense(ctx, e); err != nil {
			im.logger.Warn("create expense failed",
				zap.String("property", k.name), zap.Int("row", r.Row), zap.Error(err))
			out.Failures = append(out.Failures, ItemFailure{
				Row:    r.Row,
				Item:   models.Period{Year: r.Year, Month: r.Month}.String(),
				Reason: err.Error(),
			})
			continue
		}
		out.ExpensesCreated++
	}
	im.logger.Info("property imported",
		zap.String("property", k.name), zap.Uint("id", prop.ID),
		zap.Int("expenses", out.ExpensesCreated), zap.Int("failed", len(out.Failures)))
	return out
}
