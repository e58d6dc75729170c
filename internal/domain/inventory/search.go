package inventory

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NotFound 搜索未命中时返回的下标
const NotFound = -1

// LinearSearch 在未排序分组列表上做递归线性搜索(按书名/作者)
//
// 匹配规则:
// - 对查询串和候选的书名/作者做同样的规范化(小写、去音调符号、压缩空白)
// - 规范化后的书名或作者包含规范化后的查询串即命中(支持部分匹配)
// - 返回start及之后第一个命中的下标,未命中返回NotFound
//
// 调用方协议:想收集全部命中时,循环调用并令 start = 上次命中下标+1
// (Service.FindByTitleOrAuthor就是这样实现的)
//
// 复杂度: 时间O(n),递归栈深度O(n)——目录规模下可接受
func LinearSearch(groups []*Group, query string, start int) int {
	q := normalizeText(query)
	if q == "" {
		return NotFound
	}
	return searchLinear(groups, q, start)
}

// searchLinear 递归主体,query已规范化
func searchLinear(groups []*Group, query string, idx int) int {
	// 基线情形:扫描到列表末尾
	if idx < 0 || idx >= len(groups) {
		return NotFound
	}
	if groupMatches(groups[idx], query) {
		return idx
	}
	// 递归情形:前进一个位置
	return searchLinear(groups, query, idx+1)
}

// groupMatches 组内任意副本的书名或作者命中即算命中
func groupMatches(g *Group, normQuery string) bool {
	for _, c := range g.Copies {
		if strings.Contains(normalizeText(c.Title), normQuery) ||
			strings.Contains(normalizeText(c.Author), normQuery) {
			return true
		}
	}
	return false
}

// BinarySearch 在ISBN升序的有序镜像上做递归二分搜索(按ISBN精确匹配)
//
// 关键前置条件:
// sorted必须按ISBN升序排列。镜像未排序时结果是"错误的"而不只是"慢的"——
// 归还触发的预约指派正是依赖这次查找,所以镜像的有序性由SortByISBN
// 在每次分组变更后重建来保证(见Index的各变更方法)
//
// 返回命中下标,未命中返回NotFound
//
// 复杂度: 时间O(log n),递归栈深度O(log n)
func BinarySearch(sorted []*Group, isbn string) int {
	return searchBinary(sorted, isbn, 0, len(sorted)-1)
}

// searchBinary 递归主体
func searchBinary(sorted []*Group, isbn string, lo, hi int) int {
	// 基线情形:区间为空
	if lo > hi {
		return NotFound
	}

	mid := (lo + hi) / 2
	midISBN := sorted[mid].ISBN

	switch {
	case midISBN == isbn:
		// 基线情形:命中
		return mid
	case isbnGreater(midISBN, isbn):
		// 递归情形:目标在左半区
		return searchBinary(sorted, isbn, lo, mid-1)
	default:
		// 递归情形:目标在右半区
		return searchBinary(sorted, isbn, mid+1, hi)
	}
}

// isbnGreater 比较两个ISBN的大小
// 两个ISBN都是纯数字时按数值比较(避免"2" > "123"这类字典序陷阱),
// 任意一个带分隔符或字母时退回字典序——排序与二分必须用同一个比较函数
func isbnGreater(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return na > nb
	}
	return a > b
}

// stripMarks 去掉组合音调符号(Mn类)的转换链
// NFD分解出基字符+组合符号,删掉组合符号后再NFC合成
var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizeText 搜索用文本规范化
// 规则:小写 → 去常见音调符号(García→garcia) → 压缩连续空白为单个空格
// 转换失败(非法UTF-8等)时退化为只做小写+空白压缩,搜索宁可松不可崩
func normalizeText(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}
	return strings.Join(strings.Fields(stripped), " ")
}
