package loan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// fakeRepo 内存仓储,可注入写回失败
type fakeRepo struct {
	stored       []*Loan
	failNextSave bool
}

func (r *fakeRepo) Load(ctx context.Context) ([]*Loan, error) {
	return r.stored, nil
}

func (r *fakeRepo) Save(ctx context.Context, loans []*Loan) error {
	if r.failNextSave {
		r.failNextSave = false
		return apperrors.ErrStorage
	}
	r.stored = make([]*Loan, len(loans))
	copy(r.stored, loans)
	return nil
}

// fakeStock 内存库存:每个ISBN一个可借数,借出返回递增的副本编号
type fakeStock struct {
	available map[string]int
	nextCopy  int
	borrowed  map[string]string // 副本编号 → ISBN
}

func newFakeStock(available map[string]int) *fakeStock {
	return &fakeStock{available: available, borrowed: make(map[string]string)}
}

func (s *fakeStock) Borrow(ctx context.Context, isbn string) (string, error) {
	n, ok := s.available[isbn]
	if !ok {
		return "", apperrors.New(apperrors.ErrCodeISBNNotFound, "ISBN不在库存中")
	}
	if n <= 0 {
		return "", apperrors.New(apperrors.ErrCodeOutOfStock, "无可借副本")
	}
	s.available[isbn] = n - 1
	s.nextCopy++
	copyID := string(rune('A'+s.nextCopy-1)) + "-copy"
	s.borrowed[copyID] = isbn
	return copyID, nil
}

func (s *fakeStock) ReturnCopy(ctx context.Context, copyID string) error {
	isbn, ok := s.borrowed[copyID]
	if !ok {
		return apperrors.New(apperrors.ErrCodeBookNotFound, "副本不存在")
	}
	delete(s.borrowed, copyID)
	s.available[isbn]++
	return nil
}

func newTestService(t *testing.T, stock Stock, seed ...*Loan) (*Service, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{stored: seed}
	svc, err := NewService(context.Background(), repo, stock)
	require.NoError(t, err)
	return svc, repo
}

// TestServiceCreate 测试借书
func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("正常借出", func(t *testing.T) {
		stock := newFakeStock(map[string]int{"100": 2})
		svc, repo := newTestService(t, stock)

		l, err := svc.Create(ctx, "小明", "100")
		require.NoError(t, err)
		assert.Equal(t, "L001", l.ID)
		assert.Equal(t, "小明", l.UserID)
		assert.True(t, l.IsActive())
		assert.Equal(t, 1, stock.available["100"], "库存应减一")
		assert.Len(t, repo.stored, 1)
	})

	t.Run("单号按现有最大序号递增", func(t *testing.T) {
		stock := newFakeStock(map[string]int{"100": 5})
		svc, _ := newTestService(t, stock, NewLoan("L007", "甲", "100", "B001"))

		l, err := svc.Create(ctx, "乙", "100")
		require.NoError(t, err)
		assert.Equal(t, "L008", l.ID)
	})

	t.Run("库存不足不留台账", func(t *testing.T) {
		stock := newFakeStock(map[string]int{"100": 0})
		svc, repo := newTestService(t, stock)

		_, err := svc.Create(ctx, "小明", "100")
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeOutOfStock))
		assert.Empty(t, svc.All())
		assert.Empty(t, repo.stored)
	})

	t.Run("参数校验", func(t *testing.T) {
		svc, _ := newTestService(t, newFakeStock(map[string]int{"100": 1}))

		_, err := svc.Create(ctx, "", "100")
		assert.ErrorIs(t, err, ErrEmptyUserID)

		_, err = svc.Create(ctx, "小明", "???")
		assert.ErrorIs(t, err, ErrInvalidISBN)
	})

	t.Run("落账失败回滚库存扣减", func(t *testing.T) {
		stock := newFakeStock(map[string]int{"100": 1})
		svc, repo := newTestService(t, stock)
		repo.failNextSave = true

		_, err := svc.Create(ctx, "小明", "100")
		require.Error(t, err)
		assert.Empty(t, svc.All())
		assert.Equal(t, 1, stock.available["100"], "扣掉的库存应还回去")
	})
}

// TestServiceReturn 测试还书
func TestServiceReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("正常归还释放副本", func(t *testing.T) {
		stock := newFakeStock(map[string]int{"100": 1})
		svc, _ := newTestService(t, stock)

		l, err := svc.Create(ctx, "小明", "100")
		require.NoError(t, err)
		require.Equal(t, 0, stock.available["100"])

		returned, changed, err := svc.Return(ctx, l.ID)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, returned.Returned)
		assert.Equal(t, 1, stock.available["100"])
	})

	t.Run("重复归还是幂等无操作", func(t *testing.T) {
		stock := newFakeStock(map[string]int{"100": 1})
		svc, _ := newTestService(t, stock)

		l, _ := svc.Create(ctx, "小明", "100")
		_, changed, err := svc.Return(ctx, l.ID)
		require.NoError(t, err)
		require.True(t, changed)

		_, changed, err = svc.Return(ctx, l.ID)
		require.NoError(t, err)
		assert.False(t, changed, "第二次归还应是无操作")
		assert.Equal(t, 1, stock.available["100"], "库存不应重复加一")
	})

	t.Run("单号不存在", func(t *testing.T) {
		svc, _ := newTestService(t, newFakeStock(nil))
		_, _, err := svc.Return(ctx, "L999")
		assert.ErrorIs(t, err, ErrLoanNotFound)
	})

	t.Run("落账失败回滚归还", func(t *testing.T) {
		stock := newFakeStock(map[string]int{"100": 1})
		svc, repo := newTestService(t, stock)

		l, _ := svc.Create(ctx, "小明", "100")
		repo.failNextSave = true

		_, _, err := svc.Return(ctx, l.ID)
		require.Error(t, err)

		got, _ := svc.FindByID(l.ID)
		assert.True(t, got.IsActive(), "归还标记应回滚为在借")
		assert.Equal(t, 0, stock.available["100"], "副本应重新借出")
	})
}

// TestServiceQueries 测试台账查询视图
func TestServiceQueries(t *testing.T) {
	ctx := context.Background()
	stock := newFakeStock(map[string]int{"100": 3, "200": 1})
	svc, _ := newTestService(t, stock)

	l1, _ := svc.Create(ctx, "小明", "100")
	l2, _ := svc.Create(ctx, "小红", "100")
	l3, _ := svc.Create(ctx, "小明", "200")
	svc.Return(ctx, l1.ID)

	t.Run("按用户查全部", func(t *testing.T) {
		got := svc.FindByUser("小明")
		assert.Len(t, got, 2)
	})

	t.Run("历史视图最近的在前", func(t *testing.T) {
		history := svc.HistoryForUser("小明")
		require.Len(t, history, 2)
		assert.Equal(t, l3.ID, history[0].ID, "后借的排在前面")
		assert.Equal(t, l1.ID, history[1].ID)

		recent := svc.RecentLoans("小明", 1)
		require.Len(t, recent, 1)
		assert.Equal(t, l3.ID, recent[0].ID)
	})

	t.Run("按ISBN查在借", func(t *testing.T) {
		active := svc.FindActiveByISBN("100")
		require.Len(t, active, 1)
		assert.Equal(t, l2.ID, active[0].ID, "已归还的不算在借")
	})

	t.Run("查用户的在借单号", func(t *testing.T) {
		id, ok := svc.ActiveLoanID("小红", "100")
		require.True(t, ok)
		assert.Equal(t, l2.ID, id)

		_, ok = svc.ActiveLoanID("小明", "100")
		assert.False(t, ok, "已归还不算持有")
	})

	t.Run("按副本查在借", func(t *testing.T) {
		active := svc.FindActiveByCopy(l2.BookID)
		require.NotNil(t, active)
		assert.Equal(t, l2.ID, active.ID)
	})
}

// TestServiceDelete 测试台账删除
func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	stock := newFakeStock(map[string]int{"100": 1})
	svc, _ := newTestService(t, stock)

	l, _ := svc.Create(ctx, "小明", "100")

	t.Run("在借记录拒绝直接删除", func(t *testing.T) {
		err := svc.Delete(ctx, l.ID)
		assert.ErrorIs(t, err, ErrLoanStillActive)
		assert.Len(t, svc.All(), 1, "删除被拒后台账不变")
		assert.Equal(t, 0, stock.available["100"], "副本不能被悄悄释放")
	})

	t.Run("已归还的记录可以删除", func(t *testing.T) {
		_, changed, err := svc.Return(ctx, l.ID)
		require.NoError(t, err)
		require.True(t, changed)

		require.NoError(t, svc.Delete(ctx, l.ID))
		assert.Empty(t, svc.All())
		assert.Equal(t, 1, stock.available["100"])
	})

	t.Run("删除不存在的记录", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, "L999"), ErrLoanNotFound)
	})
}

// TestNextLoanID 测试单号生成
func TestNextLoanID(t *testing.T) {
	t.Run("空台账从L001开始", func(t *testing.T) {
		assert.Equal(t, "L001", NextLoanID(map[string]struct{}{}))
	})

	t.Run("带后缀的单号参与序号统计", func(t *testing.T) {
		existing := map[string]struct{}{"L002-1": {}, "L001": {}}
		assert.Equal(t, "L003", NextLoanID(existing))
	})
}
