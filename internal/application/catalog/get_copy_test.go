package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
)

// TestGetCopy 按副本编号直查单本
func TestGetCopy(t *testing.T) {
	ctx := context.Background()
	catalog, err := book.NewService(ctx, &memBookRepo{})
	require.NoError(t, err)
	uc := NewGetCopyUseCase(catalog)

	b, err := catalog.Create(ctx, "", "9787111558422", "Go语言实战", "威廉·肯尼迪", 0.6, 8900)
	require.NoError(t, err)

	t.Run("命中返回完整详情", func(t *testing.T) {
		got, err := uc.Execute(b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
		assert.Equal(t, "9787111558422", got.ISBN)
		assert.Equal(t, "Go语言实战", got.Title)
		assert.Equal(t, "威廉·肯尼迪", got.Author)
		assert.Equal(t, int64(8900), got.Price)
		assert.False(t, got.Borrowed)
	})

	t.Run("不存在的副本编号", func(t *testing.T) {
		_, err := uc.Execute("B999")
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}
