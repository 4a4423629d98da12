package rollup

import "github.com/alexanderramin/timesheet/internal/domain"

// Aggregate sums hours per category. Non-finite or negative hours count
// as zero. The result depends only on the multiset of rows.
func Aggregate(rows []domain.AllocationRow) domain.CategoryTotals {
	var t domain.CategoryTotals
	for _, r := range rows {
		h := rowHours(r)
		switch CategorizeRow(r) {
		case domain.CategoryAvailable:
			t.Available += h
		case domain.CategoryPTOHoliday:
			t.PTO += h
		case domain.CategoryLWOP:
			t.LWOP += h
		case domain.CategoryIndirect:
			t.Indirect += h
		default:
			t.Direct += h
		}
	}
	return t
}

func rowHours(r domain.AllocationRow) float64 {
	h := domain.FiniteOrZero(r.Hours)
	if h < 0 {
		return 0
	}
	return h
}
