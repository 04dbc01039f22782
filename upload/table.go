package upload

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// 工作表名称，与模板保持一致
const (
	ExpensesSheet = "Expenses"
	UnitsSheet    = "Units"
)

// ErrUnsupportedFormat 仅支持 xlsx 和 csv
var ErrUnsupportedFormat = errors.New("不支持的文件格式，仅支持 .xlsx 和 .csv")

// Table 上传文件解析后的表格，列名统一小写
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// ReadTable 按文件扩展名读取 xlsx 指定工作表或 csv
func ReadTable(r io.Reader, filename, sheet string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(r, sheet)
	case ".csv":
		return readCSV(r)
	}
	return nil, ErrUnsupportedFormat
}

func readXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ValidationError{Problems: []string{"无法读取 Excel 文件，请使用提供的模板"}}
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ValidationError{Problems: []string{fmt.Sprintf("无法读取工作表 '%s'，请使用提供的模板", sheet)}}
	}
	return newTable(rows), nil
}

func readCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// 去掉 Excel 导出 CSV 时的 BOM
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &ValidationError{Problems: []string{"无法解析 CSV 文件: " + err.Error()}}
	}
	return newTable(rows), nil
}

func newTable(rows [][]string) *Table {
	t := &Table{index: make(map[string]int)}
	if len(rows) == 0 {
		return t
	}
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		t.Header = append(t.Header, name)
		if _, ok := t.index[name]; !ok && name != "" {
			t.index[name] = i
		}
	}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// RequireColumns 缺少任一列时返回 ValidationError
func (t *Table) RequireColumns(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Problems: []string{"模板列不匹配，缺少列: " + strings.Join(missing, ", ")}}
	}
	return nil
}

// Cell 取某行某列的值，越界返回空字符串
func (t *Table) Cell(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// RowNumber 数据行下标对应的表格行号（表头为第 1 行）
func RowNumber(i int) int {
	return i + 2
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber 解析数字，容忍千分位逗号和 $ 前缀
func parseNumber(s string) (float64, error) {
	clean := strings.NewReplacer(",", "", "$", "", " ", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, errors.New("值为空")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("'%s' 不是有效数字", s)
	}
	return v, nil
}

// parseInt 解析整数，Excel 中的 "12.0" 也接受
func parseInt(s string) (int, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("'%s' 不是整数", s)
	}
	return int(v), nil
}
