package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	apploan "github.com/xiebiao/library/internal/application/loan"
	appreport "github.com/xiebiao/library/internal/application/report"
	appreservation "github.com/xiebiao/library/internal/application/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Handlers CLI依赖的全部用例
// 接口层只认应用层用例,不直接触碰领域服务
type Handlers struct {
	CreateCopy        *appcatalog.CreateCopyUseCase
	GetCopy           *appcatalog.GetCopyUseCase
	UpdateCopy        *appcatalog.UpdateCopyUseCase
	DeleteCopy        *appcatalog.DeleteCopyUseCase
	Search            *appcatalog.SearchUseCase
	CreateLoan        *apploan.CreateLoanUseCase
	ReturnLoan        *apploan.ReturnLoanUseCase
	DeleteLoan        *apploan.DeleteLoanUseCase
	History           *apploan.HistoryUseCase
	CreateReservation *appreservation.CreateReservationUseCase
	CancelReservation *appreservation.CancelReservationUseCase
	UpdateReservation *appreservation.UpdateReservationUseCase
	QueryReservation  *appreservation.QueryReservationUseCase
	PriceReport       *appreport.PriceReportUseCase
}

// NewRootCommand 组装命令树
// 命令按聚合分组:book(馆藏)、loan(借阅)、reservation(预约)、report(报表)
func NewRootCommand(h *Handlers) *cobra.Command {
	root := &cobra.Command{
		Use:           "library",
		Short:         "单机图书馆管理工具",
		Long:          "管理馆藏目录、借阅台账和预约队列的命令行工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBookCommand(h),
		newLoanCommand(h),
		newReservationCommand(h),
		newReportCommand(h),
	)
	return root
}

// Execute 运行命令树,错误统一出口
func Execute(h *Handlers) {
	if err := NewRootCommand(h).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", userMessage(err))
		os.Exit(1)
	}
}

// userMessage 提取面向用户的错误提示
// AppError展示Message(内部错误藏在日志里),其它错误原样输出
func userMessage(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}
