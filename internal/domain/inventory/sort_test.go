package inventory

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
)

// TestSortByISBN 测试ISBN插入排序
func TestSortByISBN(t *testing.T) {
	t.Run("数值升序", func(t *testing.T) {
		groups := []*Group{
			newTestGroup("500", "a", "a"),
			newTestGroup("2", "b", "b"),
			newTestGroup("123", "c", "c"),
		}
		sorted := SortByISBN(groups)

		var isbns []string
		for _, g := range sorted {
			isbns = append(isbns, g.ISBN)
		}
		assert.Equal(t, []string{"2", "123", "500"}, isbns)
	})

	t.Run("不修改原列表", func(t *testing.T) {
		groups := []*Group{
			newTestGroup("9", "a", "a"),
			newTestGroup("1", "b", "b"),
		}
		_ = SortByISBN(groups)
		assert.Equal(t, "9", groups[0].ISBN, "原列表应保持入组序")
	})

	t.Run("空列表与单元素", func(t *testing.T) {
		assert.Empty(t, SortByISBN(nil))
		one := []*Group{newTestGroup("7", "a", "a")}
		assert.Len(t, SortByISBN(one), 1)
	})

	t.Run("随机数据下结果有序", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for round := 0; round < 30; round++ {
			var groups []*Group
			for i := 0; i < rng.Intn(50); i++ {
				groups = append(groups, newTestGroup(fmt.Sprintf("%d", rng.Intn(1000)), "t", "a"))
			}
			require.True(t, IsSortedByISBN(SortByISBN(groups)))
		}
	})
}

// TestMergeSortByPrice 测试价格归并排序
func TestMergeSortByPrice(t *testing.T) {
	mk := func(id string, price int64) *book.Book {
		return &book.Book{ID: id, ISBN: "1", Title: "t", Author: "a", Weight: 1, Price: price}
	}

	t.Run("按价格升序", func(t *testing.T) {
		sorted := MergeSortByPrice([]*book.Book{mk("a", 300), mk("b", 100), mk("c", 200)})
		var prices []int64
		for _, c := range sorted {
			prices = append(prices, c.Price)
		}
		assert.Equal(t, []int64{100, 200, 300}, prices)
	})

	t.Run("同价保持原有顺序(稳定性)", func(t *testing.T) {
		sorted := MergeSortByPrice([]*book.Book{
			mk("first", 100), mk("second", 100), mk("cheap", 50), mk("third", 100),
		})
		var ids []string
		for _, c := range sorted {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []string{"cheap", "first", "second", "third"}, ids)
	})

	t.Run("不修改原列表", func(t *testing.T) {
		copies := []*book.Book{mk("x", 9), mk("y", 1)}
		_ = MergeSortByPrice(copies)
		assert.Equal(t, "x", copies[0].ID)
	})

	t.Run("随机数据下与标准库排序一致", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		for round := 0; round < 30; round++ {
			var copies []*book.Book
			for i := 0; i < rng.Intn(60); i++ {
				copies = append(copies, mk(fmt.Sprintf("B%d", i), int64(rng.Intn(500)+1)))
			}

			want := make([]*book.Book, len(copies))
			copy(want, copies)
			sort.SliceStable(want, func(i, j int) bool { return want[i].Price < want[j].Price })

			assert.Equal(t, want, MergeSortByPrice(copies))
		}
	})
}
