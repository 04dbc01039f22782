package report

import (
	"financials/models"
)

// AverageSquareFootage 计算每个物业所有单元面积的算术平均值
// 没有单元记录的物业不会出现在结果中，调用方应视为未定义
func AverageSquareFootage(units []models.Unit) map[uint]float64 {
	sums := make(map[uint]float64)
	counts := make(map[uint]int)
	for _, u := range units {
		sums[u.PropertyID] += u.SquareFootage
		counts[u.PropertyID]++
	}
	avg := make(map[uint]float64, len(sums))
	for id, sum := range sums {
		avg[id] = sum / float64(counts[id])
	}
	return avg
}

// AvgSqftValue 取某物业的平均面积，缺失时为 Undefined
func AvgSqftValue(avg map[uint]float64, propertyID uint) Value {
	v, ok := avg[propertyID]
	if !ok {
		return Undefined()
	}
	return Defined(v)
}
