package response

// Pagination describes the page window of a list endpoint:
// {"items":[...],"pagination":{"total":N,"page":P,"totalPages":T}}
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the page count from the row total and page size.
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Total: total, Page: page, TotalPages: totalPages}
}
