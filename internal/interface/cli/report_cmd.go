package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newReportCommand 报表命令组
func newReportCommand(h *Handlers) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "盘点报表",
	}
	cmd.AddCommand(newPriceReportCommand(h))
	return cmd
}

func newPriceReportCommand(h *Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "price",
		Short: "按价格升序输出馆藏清单和汇总",
		RunE: func(cmd *cobra.Command, args []string) error {
			rpt := h.PriceReport.Execute()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "副本\tISBN\t书名\t作者\t价格(元)\t重量(kg)")
			for _, line := range rpt.Lines {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%.2f\n",
					line.ID, line.ISBN, line.Title, line.Author, float64(line.Price)/100, line.Weight)
			}
			w.Flush()

			fmt.Printf("合计: %d册,总价值%.2f元,总重量%.2fkg\n",
				rpt.TotalCopies, float64(rpt.TotalPrice)/100, rpt.TotalWeight)
			return nil
		},
	}
}
