package report

import (
	"encoding/json"
	"math"
)

// NA 未定义数值的展示标记
const NA = "N/A"

// Value 报表数值，Valid=false 表示无法计算（除数为 0 或缺少面积数据）
type Value struct {
	Amount float64
	Valid  bool
}

// Defined 构造一个有效数值
func Defined(v float64) Value {
	return Value{Amount: v, Valid: true}
}

// Undefined 无法计算的数值
func Undefined() Value {
	return Value{}
}

// Div 相除；除数不是正有限数时返回 Undefined
func (v Value) Div(d Value) Value {
	if !v.Valid || !d.Valid || d.Amount == 0 || math.IsNaN(d.Amount) || math.IsInf(d.Amount, 0) {
		return Undefined()
	}
	return Defined(v.Amount / d.Amount)
}

// MarshalJSON 未定义时输出 "N/A"
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return json.Marshal(NA)
	}
	return json.Marshal(v.Amount)
}

// UnmarshalJSON 接受数字或 "N/A"
func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Defined(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = Undefined()
	return nil
}

// Interface 转为行映射中的值：float64 或 "N/A"
func (v Value) Interface() interface{} {
	if !v.Valid {
		return NA
	}
	return v.Amount
}
