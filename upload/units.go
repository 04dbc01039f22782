package upload

import (
	"context"
	"errors"
	"fmt"

	"financials/models"
	"financials/store"

	"go.uber.org/zap"
)

// 单元面积上传模板列
const (
	ColUnitNumber    = "unit_number"
	ColSquareFootage = "square_footage"
)

// UnitColumns 单元面积上传模板的必需列
func UnitColumns() []string {
	return []string{ColPropertyName, ColUnitNumber, ColSquareFootage}
}

// UnitRow 一条单元面积数据
type UnitRow struct {
	Row           int     `json:"row,omitempty"`
	PropertyName  string  `json:"property_name"`
	UnitNumber    int     `json:"unit_number"`
	SquareFootage float64 `json:"square_footage"`
}

func (r UnitRow) label() string {
	return fmt.Sprintf("%s #%d", r.PropertyName, r.UnitNumber)
}

// UnitRef 已处理的单元
type UnitRef struct {
	PropertyID   uint   `json:"property_id"`
	PropertyName string `json:"property_name"`
	UnitNumber   int    `json:"unit_number"`
}

// UnitReconcileResult 单元合并结果
type UnitReconcileResult struct {
	Created []UnitRef     `json:"created"`
	Skipped []UnitRef     `json:"skipped"`
	Failed  []ItemFailure `json:"failed"`
}

// ParseUnitRows 缺少必需列时整批失败；单行格式错误只记为该行失败。
// scope 非空时只解析该物业名称的行，其他行既不返回也不记为失败。
func ParseUnitRows(t *Table, scope string) ([]UnitRow, []ItemFailure, error) {
	if err := t.RequireColumns(UnitColumns()...); err != nil {
		return nil, nil, err
	}

	var (
		rows     []UnitRow
		failures []ItemFailure
	)
	for i, raw := range t.Rows {
		rowNo := RowNumber(i)
		name := t.Cell(raw, ColPropertyName)
		if scope != "" && name != scope {
			continue
		}
		item := fmt.Sprintf("%s #%s", name, t.Cell(raw, ColUnitNumber))

		number, err := parseInt(t.Cell(raw, ColUnitNumber))
		if err != nil {
			failures = append(failures, ItemFailure{Row: rowNo, Item: item, Reason: "unit_number " + err.Error()})
			continue
		}
		sqft, err := parseNumber(t.Cell(raw, ColSquareFootage))
		if err != nil {
			failures = append(failures, ItemFailure{Row: rowNo, Item: item, Reason: "square_footage " + err.Error()})
			continue
		}
		if sqft <= 0 {
			failures = append(failures, ItemFailure{Row: rowNo, Item: item, Reason: "square_footage 必须大于 0"})
			continue
		}
		rows = append(rows, UnitRow{Row: rowNo, PropertyName: name, UnitNumber: number, SquareFootage: sqft})
	}
	return rows, failures, nil
}

// ReconcileUnits 把单元面积合并进存储：已存在的 (物业, unit_number) 跳过，其余逐条创建。
// 重复执行结果不变；单条失败只记录，不中断其余单元。
// scope 非空时只处理名称与之相同的行，且全部写入 scope 指定的物业，不再按名称解析。
func (im *Importer) ReconcileUnits(ctx context.Context, rows []UnitRow, scope *models.Property) (*UnitReconcileResult, error) {
	byName := make(map[string]models.Property)
	if scope == nil {
		props, err := im.store.ListProperties(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range props {
			// 同名物业取 ID 最小的一个
			if existing, ok := byName[p.Name]; !ok || p.ID < existing.ID {
				byName[p.Name] = p
			}
		}
	}

	result := &UnitReconcileResult{Created: []UnitRef{}, Skipped: []UnitRef{}, Failed: []ItemFailure{}}
	existing := make(map[uint]map[int]bool)

	for _, r := range rows {
		var (
			prop models.Property
			ok   bool
		)
		if scope != nil {
			if r.PropertyName != scope.Name {
				continue
			}
			prop, ok = *scope, true
		} else {
			prop, ok = byName[r.PropertyName]
		}
		if !ok {
			result.Failed = append(result.Failed, ItemFailure{Row: r.Row, Item: r.label(), Reason: "物业不存在: " + r.PropertyName})
			continue
		}
		numbers, ok := existing[prop.ID]
		if !ok {
			numbers = im.existingUnitNumbers(ctx, prop.ID)
			existing[prop.ID] = numbers
		}

		ref := UnitRef{PropertyID: prop.ID, PropertyName: prop.Name, UnitNumber: r.UnitNumber}
		if numbers[r.UnitNumber] {
			result.Skipped = append(result.Skipped, ref)
			continue
		}

		unit := &models.Unit{PropertyID: prop.ID, UnitNumber: r.UnitNumber, SquareFootage: r.SquareFootage}
		err := im.store.CreateUnit(ctx, unit)
		switch {
		case err == nil:
			numbers[r.UnitNumber] = true
			result.Created = append(result.Created, ref)
		case errors.Is(err, store.ErrDuplicate):
			// 读取之后被其他上传写入
			numbers[r.UnitNumber] = true
			result.Skipped = append(result.Skipped, ref)
		default:
			im.logger.Warn("create unit failed",
				zap.String("property", prop.Name), zap.Int("unit_number", r.UnitNumber), zap.Error(err))
			result.Failed = append(result.Failed, ItemFailure{Row: r.Row, Item: r.label(), Reason: err.Error()})
		}
	}

	im.logger.Info("units reconciled",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)))
	return result, nil
}

// existingUnitNumbers 读取失败时返回空集合，依赖创建时的唯一约束兜底
func (im *Importer) existingUnitNumbers(ctx context.Context, propertyID uint) map[int]bool {
	numbers := make(map[int]bool)
	units, err := im.store.ListUnits(ctx, &propertyID)
	if err != nil {
		im.logger.Warn("list units failed, attempting all", zap.Uint("property_id", propertyID), zap.Error(err))
		return numbers
	}
	for _, u := range units {
		numbers[u.UnitNumber] = true
	}
	return numbers
}
