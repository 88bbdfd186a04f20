// Package service implements the application's business logic on top of
// the repository layer.
package service

// Page holds sanitized pagination parameters.
type Page struct {
	Page    int
	PerPage int
}

// Default per-page sizes. Owner listings page in small steps; public
// listings and search use a larger window.
const (
	DefaultOwnerPerPage  = 3
	DefaultPublicPerPage = 10
	MaxPerPage           = 100
)

// NewPage clamps raw pagination values, falling back to page 1 and the
// given default size for non-positive input.
func NewPage(page, perPage, defaultPerPage int) Page {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Page: page, PerPage: perPage}
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageInfo describes one page of results. NextPage and PrevPage are nil
// at the respective boundaries.
type PageInfo struct {
	TotalResults int64 `json:"total_results"`
	TotalPages   int   `json:"total_pages"`
	Page         int   `json:"page"`
	PerPage      int   `json:"per_page"`
	NextPage     *int  `json:"next_page"`
	PrevPage     *int  `json:"prev_page"`
}

// NewPageInfo derives the page envelope from the sanitized page and the
// total result count.
func NewPageInfo(p Page, total int64) PageInfo {
	totalPages := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))

	info := PageInfo{
		TotalResults: total,
		TotalPages:   totalPages,
		Page:         p.Page,
		PerPage:      p.PerPage,
	}
	if p.Page > 1 {
		prev := p.Page - 1
		info.PrevPage = &prev
	}
	if p.Page < totalPages {
		next := p.Page + 1
		info.NextPage = &next
	}
	return info
}
