package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"financials/client"
	"financials/models"
	"financials/report"
	"financials/store"
	"financials/upload"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app 命令共享的依赖，测试中可替换 store
type app struct {
	baseURL string
	store   store.RecordStore
	logger  *zap.Logger
}

func (a *app) recordStore() store.RecordStore {
	if a.store == nil {
		a.store = client.New(a.baseURL)
	}
	return a.store
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&app{})
}

func newRootCmdWith(a *app) *cobra.Command {
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	rootCmd := &cobra.Command{
		Use:           "finctl",
		Short:         "历史财务命令行工具：批量导入、报表、模板",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultBase := os.Getenv("API_BASE")
	if defaultBase == "" {
		defaultBase = client.DefaultBaseURL
	}
	rootCmd.PersistentFlags().StringVar(&a.baseURL, "api", defaultBase, "API 地址（默认读取 API_BASE）")

	rootCmd.AddCommand(
		importExpensesCmd(a),
		importUnitsCmd(a),
		reportCmd(a),
		templateCmd(a),
	)
	return rootCmd
}

func readTableFile(path, sheet string) (*upload.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return upload.ReadTable(f, path, sheet)
}

// printProblems 输出整批校验失败的逐行问题
func printProblems(w io.Writer, err error) error {
	var verr *upload.ValidationError
	if errors.As(err, &verr) {
		for _, p := range verr.Problems {
			fmt.Fprintln(w, "  "+p)
		}
		return fmt.Errorf("校验失败，共 %d 个问题，未写入任何数据", len(verr.Problems))
	}
	return err
}

func importExpensesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-expenses FILE",
		Short: "导入物业及月度费用（xlsx 工作表 Expenses 或 csv）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			table, err := readTableFile(args[0], upload.ExpensesSheet)
			if err != nil {
				return err
			}
			rows, err := upload.ParseExpenseRows(table)
			if err != nil {
				return printProblems(out, err)
			}

			result := upload.NewImporter(a.recordStore(), a.logger).ImportExpenses(cmd.Context(), rows)
			for _, p := range result.Properties {
				if p.Error != "" {
					fmt.Fprintf(out, "%s: 创建物业失败 (%s)，跳过 %d 条费用\n", p.PropertyName, p.Error, p.ExpensesSkipped)
					continue
				}
				fmt.Fprintf(out, "%s (#%d): 导入 %d 条费用", p.PropertyName, p.PropertyID, p.ExpensesCreated)
				if p.ExpensesSkipped > 0 {
					fmt.Fprintf(out, "，失败 %d 条", p.ExpensesSkipped)
				}
				fmt.Fprintln(out)
				for _, f := range p.Failures {
					fmt.Fprintf(out, "  第 %d 行 %s: %s\n", f.Row, f.Item, f.Reason)
				}
			}
			return nil
		},
	}
}

func importUnitsCmd(a *app) *cobra.Command {
	var property string
	cmd := &cobra.Command{
		Use:   "import-units FILE",
		Short: "合并单元面积（xlsx 工作表 Units 或 csv），已存在的单元跳过",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			table, err := readTableFile(args[0], upload.UnitsSheet)
			if err != nil {
				return err
			}
			rows, failures, err := upload.ParseUnitRows(table, property)
			if err != nil {
				return printProblems(out, err)
			}

			result, err := upload.NewImporter(a.recordStore(), a.logger).ReconcileUnits(cmd.Context(), rows, nil)
			if err != nil {
				return err
			}
			failures = append(failures, result.Failed...)
			fmt.Fprintf(out, "新增 %d，已存在 %d，失败 %d\n", len(result.Created), len(result.Skipped), len(failures))
			for _, f := range failures {
				fmt.Fprintf(out, "  第 %d 行 %s: %s\n", f.Row, f.Item, f.Reason)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&property, "property", "", "只处理该物业名称的行")
	return cmd
}

func reportCmd(a *app) *cobra.Command {
	var (
		mode               string
		perUnit, perSqft   bool
		types, locations   []string
		minUnits, maxUnits int
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "输出费用汇总报表",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := report.ParseMode(mode)
			if err != nil {
				return err
			}
			norm, err := report.NormalizationFrom(perUnit, perSqft)
			if err != nil {
				return err
			}
			var filter report.Filter
			if cmd.Flags().Changed("type") {
				filter.Types = types
			}
			if cmd.Flags().Changed("location") {
				filter.Locations = locations
			}
			if cmd.Flags().Changed("min-units") {
				filter.MinUnits = &minUnits
			}
			if cmd.Flags().Changed("max-units") {
				filter.MaxUnits = &maxUnits
			}

			result, err := report.NewService(a.recordStore(), a.logger).Summary(cmd.Context(), report.Request{
				Filter:  filter,
				Options: report.Options{Mode: m, Normalization: norm},
			})
			if err != nil {
				return err
			}
			if result.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "没有符合条件的数据")
				return nil
			}
			return writeReport(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "T12", "报表模式 T12/T3/Monthly")
	cmd.Flags().BoolVar(&perUnit, "per-unit", false, "按户数归一化")
	cmd.Flags().BoolVar(&perSqft, "per-sqft", false, "按平均面积归一化")
	cmd.Flags().StringSliceVar(&types, "type", nil, "物业类型，可重复")
	cmd.Flags().StringSliceVar(&locations, "location", nil, "地区，可重复")
	cmd.Flags().IntVar(&minUnits, "min-units", 0, "最小户数")
	cmd.Flags().IntVar(&maxUnits, "max-units", 0, "最大户数")
	return cmd
}

// writeReport 以对齐的表格输出，金额按 $1,234 格式
func writeReport(w io.Writer, result *report.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(result.Columns, "\t")+"\t")
	for _, row := range result.Rows {
		values := row.Map()
		cells := make([]string, 0, len(result.Columns))
		for _, col := range result.Columns {
			switch {
			case col == report.ColumnAvgSqft:
				cells = append(cells, report.FormatSqft(row.Property.AvgSqft))
			case models.CategoryIndex(col) >= 0:
				cells = append(cells, report.FormatCurrency(row.Value(col)))
			default:
				cells = append(cells, fmt.Sprint(values[col]))
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

func templateCmd(a *app) *cobra.Command {
	var (
		output     string
		year       int
		propertyID uint
	)
	cmd := &cobra.Command{
		Use:       "template expenses|units",
		Short:     "生成上传模板",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"expenses", "units"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				name string
				err  error
			)
			switch args[0] {
			case "expenses":
				data, err = upload.ExpenseTemplate(year)
				name = fmt.Sprintf("expenses_template_%d.xlsx", year)
			case "units":
				if propertyID == 0 {
					return errors.New("生成单元模板需要 --property-id")
				}
				p, gerr := a.recordStore().GetProperty(cmd.Context(), propertyID)
				if gerr != nil {
					return gerr
				}
				data, err = upload.UnitTemplate(*p)
				name = "units_template_" + strconv.FormatUint(uint64(p.ID), 10) + ".xlsx"
			}
			if err != nil {
				return err
			}
			if output == "" {
				output = name
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已生成 %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "输出文件路径")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "费用模板年份")
	cmd.Flags().UintVar(&propertyID, "property-id", 0, "单元模板对应的物业ID")
	return cmd
}

