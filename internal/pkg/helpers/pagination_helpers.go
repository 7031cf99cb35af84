package helpers

import "github.com/amrelfalogy/smarted/internal/app/models/dto"

// DefaultPage is the page a list is on when none was requested
const DefaultPage = 1

// PaginationForArray describes a bare-array list response. When a page was
// requested, or the array fills the requested limit, the array is one page of
// an unknown whole: page and limit echo the request and the totals stay 0.
// Otherwise the array is the complete result set.
func PaginationForArray(count, page, limit int) dto.PaginationInfo {
	if page > 0 || (limit > 0 && count >= limit) {
		if page < 1 {
			page = DefaultPage
		}
		return dto.PaginationInfo{Page: page, Limit: limit}
	}
	if limit <= 0 {
		limit = count
	}
	return dto.PaginationInfo{Page: DefaultPage, TotalPages: 1, TotalItems: count, Limit: limit}
}

// PageWindow returns the 1-based first and last item numbers shown on a page,
// for "showing 11-20 of 45" style summaries.
func PageWindow(p dto.PaginationInfo) (first, last int) {
	if p.TotalItems == 0 || p.Limit <= 0 {
		return 0, 0
	}
	first = (p.Page-1)*p.Limit + 1
	last = first + p.Limit - 1
	if last > p.TotalItems {
		last = p.TotalItems
	}
	if first > last {
		return 0, 0
	}
	return first, last
}
