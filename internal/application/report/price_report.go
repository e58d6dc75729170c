package report

import (
	"github.com/xiebiao/library/internal/domain/inventory"
)

// PriceReportUseCase 价格清单用例
// 对全部馆藏副本按价格归并排序,输出盘点清单和汇总数据
type PriceReportUseCase struct {
	index *inventory.Index
}

// NewPriceReportUseCase 创建价格清单用例
func NewPriceReportUseCase(index *inventory.Index) *PriceReportUseCase {
	return &PriceReportUseCase{index: index}
}

// PriceReportLine 清单行
type PriceReportLine struct {
	ID     string  `json:"id"`
	ISBN   string  `json:"isbn"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  int64   `json:"price"`  // 分
	Weight float64 `json:"weight"` // 千克
}

// PriceReport 价格清单
type PriceReport struct {
	Lines       []PriceReportLine `json:"lines"`        // 按价格升序,同价保持入库顺序
	TotalCopies int               `json:"total_copies"` // 馆藏总册数
	TotalPrice  int64             `json:"total_price"`  // 馆藏总价值(分)
	TotalWeight float64           `json:"total_weight"` // 馆藏总重量(千克)
}

// Execute 生成价格清单
func (uc *PriceReportUseCase) Execute() *PriceReport {
	sorted := inventory.MergeSortByPrice(uc.index.AllCopies())

	rpt := &PriceReport{TotalCopies: len(sorted)}
	for _, c := range sorted {
		rpt.Lines = append(rpt.Lines, PriceReportLine{
			ID:     c.ID,
			ISBN:   c.ISBN,
			Title:  c.Title,
			Author: c.Author,
			Price:  c.Price,
			Weight: c.Weight,
		})
		rpt.TotalPrice += c.Price
		rpt.TotalWeight += c.Weight
	}
	return rpt
}
