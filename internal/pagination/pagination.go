// Package pagination defines the page parameters and result envelope
// used by every list endpoint.
package pagination

// Default page sizes per listing.
const (
	ClientsPerPage      = 20
	ProductsPerPage     = 12
	PaymentsPerPage     = 12
	PurchaseSubListSize = 4
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page number to 1 and applies the fallback size
// when none was requested.
func (p Page) Normalize(defaultSize int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = defaultSize
	}
	return p
}

// Offset is the row offset for a SQL LIMIT/OFFSET query.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Result wraps one page of items. HasMore is always derived from the
// total count, so every list behaves the same at the boundary.
type Result[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// NewResult builds the envelope for one fetched page.
func NewResult[T any](items []T, p Page, totalCount int) Result[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if p.Size > 0 {
		totalPages = (totalCount + p.Size - 1) / p.Size
	}
	return Result[T]{
		Items:      items,
		Page:       p.Number,
		PageSize:   p.Size,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasMore:    p.Number*p.Size < totalCount,
	}
}
