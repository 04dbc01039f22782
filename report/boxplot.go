package report

import (
	"errors"
	"fmt"

	"financials/models"

	"github.com/montanaflynn/stats"
)

// ErrUnknownCategory 未知的费用类别
var ErrUnknownCategory = errors.New("未知的费用类别")

// whiskerExtent 须线延伸到 1.5 倍四分位距
const whiskerExtent = 1.5

// BoxStats 单个物业某一类别的箱线图统计
// Available=false 表示按面积统计但该物业缺少面积数据
type BoxStats struct {
	PropertyID   uint      `json:"property_id"`
	PropertyName string    `json:"property_name"`
	Available    bool      `json:"available"`
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers"`
}

// BoxPlot 按物业统计某一类别在各条费用记录上的分布
// 没有费用记录的物业不出现在结果中
func BoxPlot(props []PropertyInfo, expenses []models.Expense, category string, perSqft bool) ([]BoxStats, error) {
	idx := models.CategoryIndex(category)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	byProperty := groupByProperty(expenses)
	out := []BoxStats{}
	for _, p := range props {
		records := byProperty[p.ID]
		if len(records) == 0 {
			continue
		}
		box := BoxStats{PropertyID: p.ID, PropertyName: p.Name, Count: len(records), Outliers: []float64{}}
		if perSqft && !p.AvgSqft.Valid {
			out = append(out, box)
			continue
		}

		data := make(stats.Float64Data, 0, len(records))
		for _, e := range records {
			v := Defined(e.Amounts()[idx])
			if perSqft {
				v = v.Div(p.AvgSqft)
			}
			data = append(data, v.Amount)
		}
		if err := fillBox(&box, data); err != nil {
			return nil, fmt.Errorf("物业 %d 统计失败: %w", p.ID, err)
		}
		out = append(out, box)
	}
	return out, nil
}

func fillBox(box *BoxStats, data stats.Float64Data) error {
	var err error
	if box.Min, err = stats.Min(data); err != nil {
		return err
	}
	if box.Max, err = stats.Max(data); err != nil {
		return err
	}
	if box.Median, err = stats.Median(data); err != nil {
		return err
	}
	if data.Len() == 1 {
		box.Q1, box.Q3 = box.Median, box.Median
	} else {
		q, err := stats.Quartile(data)
		if err != nil {
			return err
		}
		box.Q1, box.Q3 = q.Q1, q.Q3
	}

	iqr := box.Q3 - box.Q1
	low, high := box.Q1-whiskerExtent*iqr, box.Q3+whiskerExtent*iqr
	box.LowerWhisker, box.UpperWhisker = box.Max, box.Min
	for _, v := range data {
		if v < low || v > high {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		if v < box.LowerWhisker {
			box.LowerWhisker = v
		}
		if v > box.UpperWhisker {
			box.UpperWhisker = v
		}
	}
	box.Available = true
	return nil
}
