package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// fakeRepo 内存仓储,可注入写回失败
type fakeRepo struct {
	stored       []*Book
	failNextSave bool
	saveCalls    int
}

func (r *fakeRepo) Load(ctx context.Context) ([]*Book, error) {
	return r.stored, nil
}

func (r *fakeRepo) Save(ctx context.Context, books []*Book) error {
	r.saveCalls++
	if r.failNextSave {
		r.failNextSave = false
		return apperrors.ErrStorage
	}
	r.stored = make([]*Book, len(books))
	copy(r.stored, books)
	return nil
}

// recordingIndexer 记录收到的索引通知
type recordingIndexer struct {
	added   []string
	removed []string
	updated []string
}

func (ix *recordingIndexer) AddCopy(b *Book)          { ix.added = append(ix.added, b.ID) }
func (ix *recordingIndexer) RemoveCopy(copyID string) { ix.removed = append(ix.removed, copyID) }
func (ix *recordingIndexer) UpdateCopy(b *Book)       { ix.updated = append(ix.updated, b.ID) }

func newTestService(t *testing.T, seed ...*Book) (*Service, *fakeRepo, *recordingIndexer) {
	t.Helper()
	repo := &fakeRepo{stored: seed}
	svc, err := NewService(context.Background(), repo)
	require.NoError(t, err)
	ix := &recordingIndexer{}
	svc.SetIndexer(ix)
	return svc, repo, ix
}

// TestServiceCreate 测试副本入库
func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("自动生成递增编号", func(t *testing.T) {
		svc, repo, ix := newTestService(t)

		b1, err := svc.Create(ctx, "", "100", "书名", "作者", 0.5, 2000)
		require.NoError(t, err)
		assert.Equal(t, "B001", b1.ID)

		b2, err := svc.Create(ctx, "", "100", "书名", "作者", 0.5, 2000)
		require.NoError(t, err)
		assert.Equal(t, "B002", b2.ID)

		assert.Len(t, repo.stored, 2, "每次入库都应写回存储")
		assert.Equal(t, []string{"B001", "B002"}, ix.added)
	})

	t.Run("自动编号接着现有最大序号", func(t *testing.T) {
		seed, _ := NewBook("B007", "100", "书", "人", 1, 100)
		svc, _, _ := newTestService(t, seed)

		b8, err := svc.Create(ctx, "B008", "100", "书", "人", 1, 100)
		require.NoError(t, err)
		assert.Equal(t, "B008", b8.ID)

		next, err := svc.Create(ctx, "", "100", "书", "人", 1, 100)
		require.NoError(t, err)
		assert.Equal(t, "B009", next.ID)
	})

	t.Run("显式编号重复拒绝", func(t *testing.T) {
		seed, _ := NewBook("B001", "100", "书", "人", 1, 100)
		svc, _, _ := newTestService(t, seed)

		_, err := svc.Create(ctx, "B001", "200", "书", "人", 1, 100)
		assert.ErrorIs(t, err, ErrIDDuplicate)
	})

	t.Run("校验失败不落库", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		_, err := svc.Create(ctx, "", "not-an-isbn!", "书", "人", 1, 100)
		assert.ErrorIs(t, err, ErrInvalidISBN)

		_, err = svc.Create(ctx, "", "100", "", "人", 1, 100)
		assert.ErrorIs(t, err, ErrEmptyTitle)

		_, err = svc.Create(ctx, "", "100", "书", "人", 0, 100)
		assert.ErrorIs(t, err, ErrInvalidWeight)

		_, err = svc.Create(ctx, "", "100", "书", "人", 1, 0)
		assert.ErrorIs(t, err, ErrInvalidPrice)

		assert.Empty(t, repo.stored)
		assert.Empty(t, svc.All())
	})

	t.Run("写回失败回滚内存", func(t *testing.T) {
		svc, repo, ix := newTestService(t)
		repo.failNextSave = true

		_, err := svc.Create(ctx, "", "100", "书", "人", 1, 100)
		require.Error(t, err)
		assert.Empty(t, svc.All(), "失败的入库不应留在内存")
		assert.Empty(t, ix.added, "失败的入库不应通知索引")

		_, err = svc.FindByID("B001")
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

// TestServiceUpdate 测试副本修改
func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("只改给出的字段", func(t *testing.T) {
		seed, _ := NewBook("B001", "100", "旧书名", "旧作者", 1, 100)
		svc, _, ix := newTestService(t, seed)

		newPrice := int64(500)
		b, err := svc.Update(ctx, "B001", UpdateParams{Title: "新书名", Price: &newPrice})
		require.NoError(t, err)
		assert.Equal(t, "新书名", b.Title)
		assert.Equal(t, "旧作者", b.Author)
		assert.Equal(t, int64(500), b.Price)
		assert.Equal(t, []string{"B001"}, ix.updated)
	})

	t.Run("校验失败保持原值", func(t *testing.T) {
		seed, _ := NewBook("B001", "100", "书", "人", 1, 100)
		svc, _, _ := newTestService(t, seed)

		badWeight := float64(-1)
		_, err := svc.Update(ctx, "B001", UpdateParams{Title: "改了一半", Weight: &badWeight})
		assert.ErrorIs(t, err, ErrInvalidWeight)

		b, _ := svc.FindByID("B001")
		assert.Equal(t, "书", b.Title, "部分字段通过校验也不能留下变更")
	})

	t.Run("写回失败回滚", func(t *testing.T) {
		seed, _ := NewBook("B001", "100", "书", "人", 1, 100)
		svc, repo, _ := newTestService(t, seed)
		repo.failNextSave = true

		_, err := svc.Update(ctx, "B001", UpdateParams{Title: "新名"})
		require.Error(t, err)
		b, _ := svc.FindByID("B001")
		assert.Equal(t, "书", b.Title)
	})
}

// TestServiceDelete 测试副本删除与借出标记
func TestServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("删除后通知索引", func(t *testing.T) {
		seed, _ := NewBook("B001", "100", "书", "人", 1, 100)
		svc, repo, ix := newTestService(t, seed)

		require.NoError(t, svc.Delete(ctx, "B001"))
		assert.Empty(t, svc.All())
		assert.Empty(t, repo.stored)
		assert.Equal(t, []string{"B001"}, ix.removed)
	})

	t.Run("删除不存在的副本", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		assert.ErrorIs(t, svc.Delete(ctx, "B999"), ErrBookNotFound)
	})

	t.Run("借出标记写回失败时回滚", func(t *testing.T) {
		seed, _ := NewBook("B001", "100", "书", "人", 1, 100)
		svc, repo, _ := newTestService(t, seed)
		repo.failNextSave = true

		err := svc.MarkBorrowed(ctx, "B001", true)
		require.Error(t, err)
		b, _ := svc.FindByID("B001")
		assert.False(t, b.Borrowed)
	})
}

// TestNewServiceDedup 加载时重复编号保留先出现的记录
func TestNewServiceDedup(t *testing.T) {
	b1, _ := NewBook("B001", "100", "先出现", "人", 1, 100)
	b2, _ := NewBook("B001", "200", "后出现", "人", 1, 100)
	repo := &fakeRepo{stored: []*Book{b1, b2}}

	svc, err := NewService(context.Background(), repo)
	require.NoError(t, err)
	require.Len(t, svc.All(), 1)
	got, _ := svc.FindByID("B001")
	assert.Equal(t, "先出现", got.Title)
}
