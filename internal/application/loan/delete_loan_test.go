package loan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainloan "github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func newDeleteLoanUseCase(app *testApp) *DeleteLoanUseCase {
	return NewDeleteLoanUseCase(app.loans, app.reservations)
}

// TestDeleteActiveLoanHandsOffToQueue 删除在借记录等价于一次归还:
// 有人排队时副本转交给队首,不能变成在架可借让人插队
func TestDeleteActiveLoanHandsOffToQueue(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	app.addCopy(t, "100")
	deleteLoan := newDeleteLoanUseCase(app)

	l1, err := app.createLoan.Execute(ctx, CreateLoanRequest{UserID: "甲", ISBN: "100"})
	require.NoError(t, err)
	r1, err := app.reservations.Create(ctx, "乙", "100")
	require.NoError(t, err)

	resp, err := deleteLoan.Execute(ctx, l1.LoanID)
	require.NoError(t, err)
	assert.True(t, resp.Returned)
	assert.Equal(t, r1.ID, resp.AssignedReservationID)
	assert.Equal(t, "乙", resp.AssignedUserID)
	require.NotEmpty(t, resp.HandOffLoanID)

	// 甲的记录已删,乙持有转交的新借阅
	_, err = app.loans.FindByID(l1.LoanID)
	assert.ErrorIs(t, err, domainloan.ErrLoanNotFound)
	activeID, ok := app.loans.ActiveLoanID("乙", "100")
	require.True(t, ok)
	assert.Equal(t, resp.HandOffLoanID, activeID)

	// 净效果:可借数仍为0,队列清空,现场借书借不到
	n, err := app.index.AvailableCount("100")
	require.NoError(t, err)
	assert.Equal(t, 0, n, "转交后可借数应保持为0")
	assert.Empty(t, app.reservations.ListPending("100"))

	_, err = app.createLoan.Execute(ctx, CreateLoanRequest{UserID: "丙", ISBN: "100"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeOutOfStock), "不能越过预约队列现场借到")

	got, err := app.reservations.FindByID(r1.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusAssigned, got.Status)
}

// TestDeleteActiveLoanWithoutQueue 没人排队时删除在借记录,书回架
func TestDeleteActiveLoanWithoutQueue(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	app.addCopy(t, "100")
	deleteLoan := newDeleteLoanUseCase(app)

	l1, err := app.createLoan.Execute(ctx, CreateLoanRequest{UserID: "甲", ISBN: "100"})
	require.NoError(t, err)

	resp, err := deleteLoan.Execute(ctx, l1.LoanID)
	require.NoError(t, err)
	assert.True(t, resp.Returned)
	assert.Empty(t, resp.AssignedReservationID)

	n, _ := app.index.AvailableCount("100")
	assert.Equal(t, 1, n)
	assert.Empty(t, app.loans.All())
}

// TestDeleteReturnedLoan 已归还的记录删除不再动库存
func TestDeleteReturnedLoan(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	app.addCopy(t, "100")
	deleteLoan := newDeleteLoanUseCase(app)

	l1, err := app.createLoan.Execute(ctx, CreateLoanRequest{UserID: "甲", ISBN: "100"})
	require.NoError(t, err)
	_, err = app.returnLoan.Execute(ctx, l1.LoanID)
	require.NoError(t, err)

	resp, err := deleteLoan.Execute(ctx, l1.LoanID)
	require.NoError(t, err)
	assert.False(t, resp.Returned)

	n, _ := app.index.AvailableCount("100")
	assert.Equal(t, 1, n, "删除已归还记录不能再加库存")

	_, err = deleteLoan.Execute(ctx, l1.LoanID)
	assert.ErrorIs(t, err, domainloan.ErrLoanNotFound)
}
