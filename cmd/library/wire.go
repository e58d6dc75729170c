//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 说明:
// 1. Wire是编译期依赖注入工具,运行 `wire gen ./cmd/library` 生成wire_gen.go
// 2. 目录服务与库存索引之间有一次回接(SetIndexer),不是纯构造链,
//    所以领域层用一个手写Provider(newDomainServices)整体提供
// 3. 当前main.go仍用手动注入,本文件作为依赖图的声明性描述维护

package main

import (
	"context"

	"github.com/google/wire"

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
	"github.com/xiebiao/library/internal/interface/cli"
)

// domainServices 领域层服务集合
type domainServices struct {
	Catalog      *book.Service
	Index        *inventory.Index
	Loans        *loan.Service
	Reservations *reservation.Service
}

// newDomainServices 组装领域层
// 目录加载→建索引→回接Indexer→台账→预约队列,顺序固定
func newDomainServices(
	ctx context.Context,
	bookRepo book.Repository,
	loanRepo loan.Repository,
	reservationRepo reservation.Repository,
) (*domainServices, error) {
	catalog, err := book.NewService(ctx, bookRepo)
	if err != nil {
		return nil, err
	}
	index := inventory.NewIndex(catalog, catalog.All())
	catalog.SetIndexer(index)

	loans, err := loan.NewService(ctx, loanRepo, index)
	if err != nil {
		return nil, err
	}
	reservations, err := reservation.NewService(ctx, reservationRepo, index, loans)
	if err != nil {
		return nil, err
	}
	return &domainServices{
		Catalog:      catalog,
		Index:        index,
		Loans:        loans,
		Reservations: reservations,
	}, nil
}

// fileRepositorySet 文件存储仓储
var fileRepositorySet = wire.NewSet(
	provideBookStore,
	provideLoanStore,
	provideReservationStore,
)

func provideBookStore(cfg *config.Config) book.Repository {
	return file.NewBookStore(cfg.Storage.BooksPath())
}

func provideLoanStore(cfg *config.Config) loan.Repository {
	return file.NewLoanStore(cfg.Storage.LoansPath())
}

func provideReservationStore(cfg *config.Config) reservation.Repository {
	return file.NewReservationStore(cfg.Storage.ReservationsPath())
}

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appcatalog.NewCreateCopyUseCase,
	appcatalog.NewGetCopyUseCase,
	appcatalog.NewUpdateCopyUseCase,
	appcatalog.NewDeleteCopyUseCase,
	appcatalog.NewSearchUseCase,
	apploan.NewCreateLoanUseCase,
	apploan.NewReturnLoanUseCase,
	apploan.NewDeleteLoanUseCase,
	apploan.NewHistoryUseCase,
	appreservation.NewCreateReservationUseCase,
	appreservation.NewCancelReservationUseCase,
	appreservation.NewUpdateReservationUseCase,
	appreservation.NewQueryReservationUseCase,
	appreport.NewPriceReportUseCase,
)

// provideServices 把领域服务集合摊平给应用层Provider用
var provideServices = wire.NewSet(
	wire.FieldsOf(new(*domainServices), "Catalog", "Index", "Loans", "Reservations"),
)

// InitializeHandlers 构造CLI处理器集合(文件存储)
func InitializeHandlers(ctx context.Context) (*cli.Handlers, error) {
	wire.Build(
		config.Load,
		fileRepositorySet,
		newDomainServices,
		provideServices,
		applicationSet,
		wire.Struct(new(cli.Handlers), "*"),
	)
	return nil, nil
}
