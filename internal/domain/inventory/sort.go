package inventory

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// SortByISBN 用插入排序重建ISBN升序的有序镜像
//
// 设计说明:
// 1. 返回新切片,不修改传入的插入序列表(镜像与原列表共享Group指针)
// 2. 插入排序是稳定排序:ISBN相同的组保持原有相对顺序
// 3. 复杂度最好O(n)/最坏O(n²),目录规模(数百到数千组)下完全够用,
//    换来的是实现简单、增量插入友好
// 4. 这是二分搜索前置条件的唯一维护点:每次分组变更后必须调用
func SortByISBN(groups []*Group) []*Group {
	sorted := make([]*Group, len(groups))
	copy(sorted, groups)

	for i := 1; i < len(sorted); i++ {
		current := sorted[i]
		j := i - 1
		for j >= 0 && isbnGreater(sorted[j].ISBN, current.ISBN) {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = current
	}
	return sorted
}

// IsSortedByISBN 校验列表是否按ISBN升序
// 用途:测试与调试时验证二分搜索的前置条件成立
func IsSortedByISBN(groups []*Group) bool {
	for i := 0; i+1 < len(groups); i++ {
		if isbnGreater(groups[i].ISBN, groups[i+1].ISBN) {
			return false
		}
	}
	return true
}

// MergeSortByPrice 用递归归并排序按价格升序排列副本列表
//
// 用于库存价值报表:相比插入排序,归并排序O(n log n)且稳定,
// 报表可能跨全部副本,规模比分组列表大一个数量级
func MergeSortByPrice(copies []*book.Book) []*book.Book {
	// 基线情形:0或1个元素天然有序
	if len(copies) <= 1 {
		out := make([]*book.Book, len(copies))
		copy(out, copies)
		return out
	}

	mid := len(copies) / 2
	left := MergeSortByPrice(copies[:mid])
	right := MergeSortByPrice(copies[mid:])
	return mergeByPrice(left, right)
}

// mergeByPrice 合并两个有序子列表
// 相等时取左侧元素,保证稳定性
func mergeByPrice(left, right []*book.Book) []*book.Book {
	merged := make([]*book.Book, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i].Price <= right[j].Price {
			merged = append(merged, left[i])
			i++
		} else {
			merged = append(merged, right[j])
			j++
		}
	}
	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)
	return merged
}
