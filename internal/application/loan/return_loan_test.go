package loan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/inventory"
	domainloan "github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 全链路编排测试:用真实领域服务+内存仓储,
// 验证"还书→分配预约→自动转借"的净效果

type memBookRepo struct{ stored []*book.Book }

func (r *memBookRepo) Load(ctx context.Context) ([]*book.Book, error) { return r.stored, nil }
func (r *memBookRepo) Save(ctx context.Context, books []*book.Book) error {
	r.stored = append([]*book.Book(nil), books...)
	return nil
}

type memLoanRepo struct{ stored []*domainloan.Loan }

func (r *memLoanRepo) Load(ctx context.Context) ([]*domainloan.Loan, error) { return r.stored, nil }
func (r *memLoanRepo) Save(ctx context.Context, loans []*domainloan.Loan) error {
	r.stored = append([]*domainloan.Loan(nil), loans...)
	return nil
}

type memReservationRepo struct{ stored []*reservation.Reservation }

func (r *memReservationRepo) Load(ctx context.Context) ([]*reservation.Reservation, error) {
	return r.stored, nil
}
func (r *memReservationRepo) Save(ctx context.Context, reservations []*reservation.Reservation) error {
	r.stored = append([]*reservation.Reservation(nil), reservations...)
	return nil
}

// testApp 组装一套完整的领域服务(与main的接线方式一致)
type testApp struct {
	catalog      *book.Service
	index        *inventory.Index
	loans        *domainloan.Service
	reservations *reservation.Service
	returnLoan   *ReturnLoanUseCase
	createLoan   *CreateLoanUseCase
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	catalog, err := book.NewService(ctx, &memBookRepo{})
	require.NoError(t, err)
	index := inventory.NewIndex(catalog, catalog.All())
	catalog.SetIndexer(index)

	loans, err := domainloan.NewService(ctx, &memLoanRepo{}, index)
	require.NoError(t, err)
	reservations, err := reservation.NewService(ctx, &memReservationRepo{}, index, loans)
	require.NoError(t, err)

	return &testApp{
		catalog:      catalog,
		index:        index,
		loans:        loans,
		reservations: reservations,
		returnLoan:   NewReturnLoanUseCase(loans, reservations),
		createLoan:   NewCreateLoanUseCase(loans),
	}
}

func (app *testApp) addCopy(t *testing.T, isbn string) *book.Book {
	t.Helper()
	b, err := app.catalog.Create(context.Background(), "", isbn, "测试书"+isbn, "测试作者", 0.5, 3000)
	require.NoError(t, err)
	return b
}

// TestReturnWithHandOff 有人排队时还书直接转手
func TestReturnWithHandOff(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	app.addCopy(t, "100")

	// 甲借走唯一一本
	l1, err := app.createLoan.Execute(ctx, CreateLoanRequest{UserID: "甲", ISBN: "100"})
	require.NoError(t, err)

	// 乙在零库存时排队
	r1, err := app.reservations.Create(ctx, "乙", "100")
	require.NoError(t, err)

	// 甲还书:应自动分配给乙并建新借阅
	resp, err := app.returnLoan.Execute(ctx, l1.LoanID)
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, r1.ID, resp.AssignedReservationID)
	assert.Equal(t, "乙", resp.AssignedUserID)
	require.NotEmpty(t, resp.HandOffLoanID)

	// 净效果:可借数仍为0,持有人换成乙
	n, err := app.index.AvailableCount("100")
	require.NoError(t, err)
	assert.Equal(t, 0, n, "转手后可借数应保持为0")

	activeID, ok := app.loans.ActiveLoanID("乙", "100")
	require.True(t, ok)
	assert.Equal(t, resp.HandOffLoanID, activeID)

	got, err := app.reservations.FindByID(r1.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusAssigned, got.Status)
	assert.NotNil(t, got.AssignedAt)
}

// TestReturnWithoutReservation 没人排队时书回架
func TestReturnWithoutReservation(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	app.addCopy(t, "100")

	l1, err := app.createLoan.Execute(ctx, CreateLoanRequest{UserID: "甲", ISBN: "100"})
	require.NoError(t, err)

	resp, err := app.returnLoan.Execute(ctx, l1.LoanID)
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Empty(t, resp.AssignedReservationID)
	assert.Empty(t, resp.HandOffLoanID)

	n, _ := app.index.AvailableCount("100")
	assert.Equal(t, 1, n, "无人排队时可借数应恢复")
}

// TestReturnIdempotent 重复还书不触发二次转交
func TestReturnIdempotent(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	app.addCopy(t, "100")
	app.addCopy(t, "100")

	l1, err := app.createLoan.Execute(ctx, CreateLoanRequest{UserID: "甲", ISBN: "100"})
	require.NoError(t, err)

	resp, err := app.returnLoan.Execute(ctx, l1.LoanID)
	require.NoError(t, err)
	require.True(t, resp.Changed)

	resp, err = app.returnLoan.Execute(ctx, l1.LoanID)
	require.NoError(t, err)
	assert.False(t, resp.Changed)

	n, _ := app.index.AvailableCount("100")
	assert.Equal(t, 2, n, "重复归还不能重复加库存")
}

// TestFIFOOrderAcrossReturns 多人排队时按预约顺序依次转手
func TestFIFOOrderAcrossReturns(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	app.addCopy(t, "100")

	l1, err := app.createLoan.Execute(ctx, CreateLoanRequest{UserID: "甲", ISBN: "100"})
	require.NoError(t, err)

	r1, err := app.reservations.Create(ctx, "乙", "100")
	require.NoError(t, err)
	r2, err := app.reservations.Create(ctx, "丙", "100")
	require.NoError(t, err)
	assert.Equal(t, 1, r1.Position)
	assert.Equal(t, 2, r2.Position)

	// 第一次还书:乙中签
	resp, err := app.returnLoan.Execute(ctx, l1.LoanID)
	require.NoError(t, err)
	assert.Equal(t, "乙", resp.AssignedUserID)

	// 乙还书:丙中签
	resp, err = app.returnLoan.Execute(ctx, resp.HandOffLoanID)
	require.NoError(t, err)
	assert.Equal(t, "丙", resp.AssignedUserID)

	assert.Empty(t, app.reservations.ListPending("100"), "队列应清空")
}

// TestReserveWhileHoldingLoan 手里有书不能再排队
func TestReserveWhileHoldingLoan(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	app.addCopy(t, "100")

	l1, err := app.createLoan.Execute(ctx, CreateLoanRequest{UserID: "甲", ISBN: "100"})
	require.NoError(t, err)

	_, err = app.reservations.Create(ctx, "甲", "100")
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeDuplicateActiveLoan))
	assert.Contains(t, apperrors.GetAppError(err).Message, l1.LoanID)
}
