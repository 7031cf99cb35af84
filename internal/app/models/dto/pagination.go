package dto

// PaginationInfo is the pagination block returned next to list payloads
type PaginationInfo struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
	Limit      int `json:"limit"`
}

// HasNext reports whether a later page is known to exist
func (p PaginationInfo) HasNext() bool {
	return p.Page < p.TotalPages
}

// TotalsKnown is false when the backend sent a bare page without counts
func (p PaginationInfo) TotalsKnown() bool {
	return p.TotalPages > 0
}

// SortOrder is the direction of a sorted list
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListParams are the filters shared by every list endpoint. Zero values are
// treated as "not provided" and never sent.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder SortOrder
}
