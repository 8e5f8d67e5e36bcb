package queries

import "strconv"

const (
	VehiclePageSize  = 12
	CategoryPageSize = 9
	BookingPageSize  = 10
)

// Page describes one page of a page-number paginated list.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_previous"`
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ParsePageNumber turns the raw page parameter into a page number. A value
// that is not an integer means the first page; out-of-range integers are left
// for NewPage to clamp.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// NewPage sends any out-of-range request, below one or past the end, to the
// last page. An empty list still has one page.
func NewPage(requested, size int, total int64) Page {
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	number := requested
	if number < 1 || number > pages {
		number = pages
	}
	return Page{
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
		HasNext:    number < pages,
		HasPrev:    number > 1,
	}
}
