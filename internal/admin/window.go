package admin

// PageItem is one slot in a compact page-number list: either a page
// number or an ellipsis marker bridging an elided range.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PaginationWindow produces a compact page-number list: always page 1
// and the last page, every page within delta of current, and a single
// ellipsis marker wherever consecutive included pages leave a gap
// greater than one. Deterministic and symmetric around current.
func PaginationWindow(current, total, delta int) []PageItem {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	var included []int
	for p := 1; p <= total; p++ {
		if p == 1 || p == total || (p >= current-delta && p <= current+delta) {
			included = append(included, p)
		}
	}

	items := make([]PageItem, 0, len(included)+2)
	prev := 0
	for _, p := range included {
		if prev != 0 && p-prev > 1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: p})
		prev = p
	}
	return items
}
