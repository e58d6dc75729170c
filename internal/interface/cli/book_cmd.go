package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appcatalog "github.com/xiebiao/library/internal/application/catalog"
)

// newBookCommand 馆藏管理命令组
func newBookCommand(h *Handlers) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "馆藏管理(入库/修改/出库/检索)",
	}
	cmd.AddCommand(
		newBookAddCommand(h),
		newBookGetCommand(h),
		newBookUpdateCommand(h),
		newBookRemoveCommand(h),
		newBookListCommand(h),
		newBookSearchCommand(h),
	)
	return cmd
}

func newBookAddCommand(h *Handlers) *cobra.Command {
	var req appcatalog.CreateCopyRequest
	cmd := &cobra.Command{
		Use:   "add",
		Short: "登记一本新副本",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := h.CreateCopy.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("已入库: %s 《%s》(%s) ISBN %s\n", resp.ID, resp.Title, resp.Author, resp.ISBN)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.ID, "id", "", "副本编号(留空自动生成)")
	cmd.Flags().StringVar(&req.ISBN, "isbn", "", "ISBN号")
	cmd.Flags().StringVar(&req.Title, "title", "", "书名")
	cmd.Flags().StringVar(&req.Author, "author", "", "作者")
	cmd.Flags().Float64Var(&req.Weight, "weight", 0, "重量(千克)")
	cmd.Flags().Int64Var(&req.Price, "price", 0, "价格(分)")
	cmd.MarkFlagRequired("isbn")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("author")
	return cmd
}

func newBookGetCommand(h *Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "get <副本编号>",
		Short: "按副本编号查看单本详情",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := h.GetCopy.Execute(args[0])
			if err != nil {
				return err
			}
			status := "在架"
			if c.Borrowed {
				status = "借出"
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "副本\tISBN\t书名\t作者\t重量(千克)\t价格(分)\t状态")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\t%s\n",
				c.ID, c.ISBN, c.Title, c.Author, c.Weight, c.Price, status)
			w.Flush()
			return nil
		},
	}
}

func newBookUpdateCommand(h *Handlers) *cobra.Command {
	var (
		isbn, title, author string
		weight              float64
		price               int64
	)
	cmd := &cobra.Command{
		Use:   "update <副本编号>",
		Short: "修改副本信息(只改显式给出的字段)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := appcatalog.UpdateCopyRequest{
				ID:     args[0],
				ISBN:   isbn,
				Title:  title,
				Author: author,
			}
			// 只有显式传入的数值字段才参与修改
			if cmd.Flags().Changed("weight") {
				req.Weight = &weight
			}
			if cmd.Flags().Changed("price") {
				req.Price = &price
			}
			resp, err := h.UpdateCopy.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("已更新: %s 《%s》(%s) ISBN %s\n", resp.ID, resp.Title, resp.Author, resp.ISBN)
			return nil
		},
	}
	cmd.Flags().StringVar(&isbn, "isbn", "", "新ISBN号")
	cmd.Flags().StringVar(&title, "title", "", "新书名")
	cmd.Flags().StringVar(&author, "author", "", "新作者")
	cmd.Flags().Float64Var(&weight, "weight", 0, "新重量(千克)")
	cmd.Flags().Int64Var(&price, "price", 0, "新价格(分)")
	return cmd
}

func newBookRemoveCommand(h *Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <副本编号>",
		Short: "出库一本副本(在借或被预约阻塞时拒绝)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.DeleteCopy.Execute(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("已出库: %s\n", args[0])
			return nil
		},
	}
}

func newBookListCommand(h *Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出全部馆藏(按ISBN升序)",
		RunE: func(cmd *cobra.Command, args []string) error {
			printGroups(h.Search.ListAll())
			return nil
		},
	}
}

func newBookSearchCommand(h *Handlers) *cobra.Command {
	var isbn, query string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "检索馆藏(--isbn精确查,--query按书名/作者模糊查)",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case isbn != "":
				g := h.Search.ByISBN(isbn)
				if g == nil {
					fmt.Println("没有找到该ISBN的馆藏")
					return nil
				}
				printGroups([]*appcatalog.GroupView{g})
			case query != "":
				groups := h.Search.ByTitleOrAuthor(query)
				if len(groups) == 0 {
					fmt.Println("没有匹配的馆藏")
					return nil
				}
				printGroups(groups)
			default:
				return fmt.Errorf("--isbn和--query至少给一个")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&isbn, "isbn", "", "按ISBN精确检索")
	cmd.Flags().StringVar(&query, "query", "", "按书名/作者模糊检索")
	return cmd
}

// printGroups 以表格输出ISBN分组
func printGroups(groups []*appcatalog.GroupView) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ISBN\t书名\t作者\t总册数\t可借")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", g.ISBN, g.Title, g.Author, g.TotalCopies, g.AvailableCount)
	}
	w.Flush()
}
