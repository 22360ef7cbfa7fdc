package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// Whole describes an unpaginated result of total items as a single page.
func Whole(total int) *Pagination {
	p := &Pagination{Page: 1, PageSize: total, TotalItems: int64(total)}
	if total > 0 {
		p.TotalPages = 1
		p.From = 1
		p.To = total
	}
	return p
}
