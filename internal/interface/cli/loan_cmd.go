package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	apploan "github.com/xiebiao/library/internal/application/loan"
)

// newLoanCommand 借阅管理命令组
func newLoanCommand(h *Handlers) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "借阅管理(借书/还书/历史)",
	}
	cmd.AddCommand(
		newLoanBorrowCommand(h),
		newLoanReturnCommand(h),
		newLoanRemoveCommand(h),
		newLoanHistoryCommand(h),
		newLoanActiveCommand(h),
	)
	return cmd
}

func newLoanBorrowCommand(h *Handlers) *cobra.Command {
	var userID, isbn string
	cmd := &cobra.Command{
		Use:   "borrow",
		Short: "借出一本书",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := h.CreateLoan.Execute(cmd.Context(), apploan.CreateLoanRequest{
				UserID: userID,
				ISBN:   isbn,
			})
			if err != nil {
				return err
			}
			fmt.Printf("借出成功: 借阅单%s,副本%s\n", resp.LoanID, resp.BookID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "借阅人")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN号")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("isbn")
	return cmd
}

func newLoanReturnCommand(h *Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "return <借阅单号>",
		Short: "归还一本书(有人排队时自动转交给队首预约)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := h.ReturnLoan.Execute(cmd.Context(), args[0])
			// 归还已生效、转交半途失败时resp非nil,先报已完成的部分
			if resp != nil && resp.Changed {
				fmt.Printf("归还成功: 借阅单%s\n", resp.LoanID)
				if resp.AssignedReservationID != "" {
					fmt.Printf("已转交排队预约%s(用户%s)", resp.AssignedReservationID, resp.AssignedUserID)
					if resp.HandOffLoanID != "" {
						fmt.Printf(",新借阅单%s", resp.HandOffLoanID)
					}
					fmt.Println()
				}
			} else if resp != nil {
				fmt.Printf("借阅单%s此前已归还,本次无操作\n", resp.LoanID)
			}
			return err
		},
	}
}

func newLoanRemoveCommand(h *Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <借阅单号>",
		Short: "删除一条借阅记录(在借的先自动归还转交)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := h.DeleteLoan.Execute(cmd.Context(), args[0])
			// 补归还已生效、后续步骤失败时resp非nil,先报已完成的部分
			if resp != nil && resp.Returned {
				fmt.Printf("借阅单%s已补一次归还\n", resp.LoanID)
				if resp.AssignedReservationID != "" {
					fmt.Printf("已转交排队预约%s(用户%s)", resp.AssignedReservationID, resp.AssignedUserID)
					if resp.HandOffLoanID != "" {
						fmt.Printf(",新借阅单%s", resp.HandOffLoanID)
					}
					fmt.Println()
				}
			}
			if err != nil {
				return err
			}
			fmt.Printf("已删除: 借阅单%s\n", args[0])
			return nil
		},
	}
}

func newLoanHistoryCommand(h *Handlers) *cobra.Command {
	var userID string
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "查看借阅历史(最近的在前)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var loans []apploan.LoanView
			if userID != "" {
				loans = h.History.ForUser(userID, limit)
			} else {
				loans = h.History.All()
			}
			printLoans(loans)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "只看某用户(留空看全部)")
	cmd.Flags().IntVar(&limit, "limit", 0, "最多显示条数(0不限)")
	return cmd
}

func newLoanActiveCommand(h *Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "active <ISBN>",
		Short: "查看某ISBN的在借记录",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printLoans(h.History.ActiveByISBN(args[0]))
			return nil
		},
	}
}

// printLoans 以表格输出借阅记录
func printLoans(loans []apploan.LoanView) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "借阅单\t用户\tISBN\t副本\t借出时间\t状态")
	for _, l := range loans {
		status := "在借"
		if l.Returned {
			status = "已还"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.LoanID, l.UserID, l.ISBN, l.BookID, l.LoanDate.Format("2006-01-02 15:04"), status)
	}
	w.Flush()
}
