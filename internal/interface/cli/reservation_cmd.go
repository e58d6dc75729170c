package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appreservation "github.com/xiebiao/library/internal/application/reservation"
)

// newReservationCommand 预约管理命令组
func newReservationCommand(h *Handlers) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservation",
		Short: "预约管理(排队/取消/查询)",
	}
	cmd.AddCommand(
		newReservationAddCommand(h),
		newReservationCancelCommand(h),
		newReservationUpdateCommand(h),
		newReservationListCommand(h),
		newReservationPositionCommand(h),
	)
	return cmd
}

func newReservationAddCommand(h *Handlers) *cobra.Command {
	var userID, isbn string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "预约一本暂无库存的书",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := h.CreateReservation.Execute(cmd.Context(), appreservation.CreateReservationRequest{
				UserID: userID,
				ISBN:   isbn,
			})
			if err != nil {
				return err
			}
			fmt.Printf("预约成功: 预约单%s,当前排第%d位\n", resp.ReservationID, resp.Position)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "预约人")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN号")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("isbn")
	return cmd
}

func newReservationCancelCommand(h *Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <预约单号>",
		Short: "取消预约(后面的预约位次自动前移)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.CancelReservation.Execute(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("已取消预约%s\n", args[0])
			return nil
		},
	}
}

func newReservationListCommand(h *Handlers) *cobra.Command {
	var userID, isbn string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "查看预约(--isbn看某书的排队,--user看某人的预约)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var views []appreservation.ReservationView
			switch {
			case isbn != "":
				views = h.QueryReservation.PendingByISBN(isbn)
			case userID != "":
				views = h.QueryReservation.ForUser(userID)
			default:
				views = h.QueryReservation.All()
			}
			printReservations(views)
			return nil
		},
	}
	cmd.Flags().StringVar(&isbn, "isbn", "", "只看某ISBN的排队预约")
	cmd.Flags().StringVar(&userID, "user", "", "只看某用户的预约")
	return cmd
}

func newReservationUpdateCommand(h *Handlers) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "update <预约单号>",
		Short: "修改排队中预约的预约人",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.UpdateReservation.Execute(cmd.Context(), args[0], userID); err != nil {
				return err
			}
			fmt.Printf("已更新预约%s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "新预约人")
	cmd.MarkFlagRequired("user")
	return cmd
}

func newReservationPositionCommand(h *Handlers) *cobra.Command {
	var userID, isbn string
	cmd := &cobra.Command{
		Use:   "position [预约单号]",
		Short: "查询预约当前排第几位(给单号,或给--user加--isbn)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				pos int
				err error
			)
			switch {
			case len(args) == 1:
				pos, err = h.QueryReservation.Position(args[0])
			case userID != "" && isbn != "":
				pos, err = h.QueryReservation.PositionFor(userID, isbn)
			default:
				return fmt.Errorf("请给预约单号,或同时给--user和--isbn")
			}
			if err != nil {
				return err
			}
			if pos == 0 {
				fmt.Println("该预约不在排队中")
				return nil
			}
			fmt.Printf("当前排第%d位\n", pos)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "预约人")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN号")
	return cmd
}

// printReservations 以表格输出预约记录
func printReservations(views []appreservation.ReservationView) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "预约单\t用户\tISBN\t预约时间\t状态\t位次")
	for _, v := range views {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			v.ReservationID, v.UserID, v.ISBN, v.ReservedDate.Format("2006-01-02 15:04"), v.Status, v.Position)
	}
	w.Flush()
}
