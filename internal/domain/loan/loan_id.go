package loan

import (
	"fmt"
	"strconv"
	"strings"
)

// NextLoanID 生成下一个借阅单号
// 单号设计与历史数据保持一致:
// 1. 格式为L + 三位零填充序号(如L007),按现有最大序号递增
// 2. 递增后仍与现有单号冲突时(历史数据手工录入过单号),
//    追加数字后缀消除歧义(如L007-1、L007-2)
// 3. 单进程单写者模型下该方案天然无碰撞
func NextLoanID(existing map[string]struct{}) string {
	maxN := 0
	for id := range existing {
		if !strings.HasPrefix(id, "L") {
			continue
		}
		numPart := id[1:]
		if i := strings.IndexByte(numPart, '-'); i >= 0 {
			numPart = numPart[:i]
		}
		if n, err := strconv.Atoi(numPart); err == nil && n > maxN {
			maxN = n
		}
	}

	id := fmt.Sprintf("L%03d", maxN+1)
	for counter := 1; ; counter++ {
		if _, taken := existing[id]; !taken {
			return id
		}
		id = fmt.Sprintf("L%03d-%d", maxN+1, counter)
	}
}
