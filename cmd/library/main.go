package main

import (
	"context"
	"log"

	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	apploan "github.com/xiebiao/library/internal/application/loan"
	appreport "github.com/xiebiao/library/internal/application/report"
	appreservation "github.com/xiebiao/library/internal/application/reservation"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/file"
	"github.com/xiebiao/library/internal/infrastructure/persistence/sqlite"
	"github.com/xiebiao/library/internal/interface/cli"
)

// main 主程序入口
// 说明:手动依赖注入,组装链 Repository ← Service ← UseCase ← CLI
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 按配置选择存储驱动
	bookRepo, loanRepo, reservationRepo, err := newRepositories(cfg)
	if err != nil {
		log.Fatalf("初始化存储失败: %v", err)
	}

	ctx := context.Background()

	// 3. 领域层
	// 组装顺序有讲究:目录服务先加载全部副本,库存索引基于这份
	// 快照建组,再回接Indexer让目录的后续变更同步进索引
	catalog, err := book.NewService(ctx, bookRepo)
	if err != nil {
		log.Fatalf("加载馆藏目录失败: %v", err)
	}
	index := inventory.NewIndex(catalog, catalog.All())
	catalog.SetIndexer(index)

	loans, err := loan.NewService(ctx, loanRepo, index)
	if err != nil {
		log.Fatalf("加载借阅台账失败: %v", err)
	}
	reservations, err := reservation.NewService(ctx, reservationRepo, index, loans)
	if err != nil {
		log.Fatalf("加载预约队列失败: %v", err)
	}

	// 4. 应用层 + 接口层
	handlers := &cli.Handlers{
		CreateCopy:        appcatalog.NewCreateCopyUseCase(catalog),
		GetCopy:           appcatalog.NewGetCopyUseCase(catalog),
		UpdateCopy:        appcatalog.NewUpdateCopyUseCase(catalog),
		DeleteCopy:        appcatalog.NewDeleteCopyUseCase(catalog, index, loans, reservations),
		Search:            appcatalog.NewSearchUseCase(index),
		CreateLoan:        apploan.NewCreateLoanUseCase(loans),
		ReturnLoan:        apploan.NewReturnLoanUseCase(loans, reservations),
		DeleteLoan:        apploan.NewDeleteLoanUseCase(loans, reservations),
		History:           apploan.NewHistoryUseCase(loans),
		CreateReservation: appreservation.NewCreateReservationUseCase(reservations),
		CancelReservation: appreservation.NewCancelReservationUseCase(reservations),
		UpdateReservation: appreservation.NewUpdateReservationUseCase(reservations),
		QueryReservation:  appreservation.NewQueryReservationUseCase(reservations),
		PriceReport:       appreport.NewPriceReportUseCase(index),
	}

	// 5. 运行命令树
	cli.Execute(handlers)
}

// newRepositories 按存储驱动创建三个仓储
func newRepositories(cfg *config.Config) (book.Repository, loan.Repository, reservation.Repository, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.NewDB(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return sqlite.NewBookRepository(db),
			sqlite.NewLoanRepository(db),
			sqlite.NewReservationRepository(db), nil
	default:
		return file.NewBookStore(cfg.Storage.BooksPath()),
			file.NewLoanStore(cfg.Storage.LoansPath()),
			file.NewReservationStore(cfg.Storage.ReservationsPath()), nil
	}
}
