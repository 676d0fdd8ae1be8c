// Package domain contains core business types for the CRM back-office.
//
// This file defines pagination and search primitives shared by every
// list screen.
package domain

// =============================================================================
// Page Request / Search State
// =============================================================================

// PageRequest describes one fetch against a paginated CRM endpoint.
// It is constructed fresh per fetch and never mutated.
type PageRequest struct {
	PageNumber int    // 1-indexed page
	PageSize   int    // rows per page
	SearchType string // backend field to search on, empty for default
	Query      string // free-text search term
}

// SearchState is the mutable counterpart of PageRequest, owned by a list
// controller. It is mutated only through the controller's page-change and
// search operations.
type SearchState struct {
	CurrentPage int
	PageSize    int
	SearchQuery string
	SearchType  string
}

// Request snapshots the state into an immutable PageRequest.
func (s SearchState) Request() PageRequest {
	return PageRequest{
		PageNumber: s.CurrentPage,
		PageSize:   s.PageSize,
		SearchType: s.SearchType,
		Query:      s.SearchQuery,
	}
}

// =============================================================================
// Page Result
// =============================================================================

// Page is one page of mapped rows plus the backend's total row count.
type Page[T any] struct {
	Rows  []T
	Total int
}

// =============================================================================
// Pagination Display Data
// =============================================================================

// Pagination contains pagination information for display.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	PerPage     int
	Total       int
	HasPrevious bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

// NewPagination derives display pagination from a search state and the
// total row count reported by the backend.
func NewPagination(state SearchState, total int) Pagination {
	totalPages := 1
	if state.PageSize > 0 {
		totalPages = total / state.PageSize
		if total%state.PageSize > 0 {
			totalPages++
		}
		if totalPages < 1 {
			totalPages = 1
		}
	}

	return Pagination{
		CurrentPage: state.CurrentPage,
		TotalPages:  totalPages,
		PerPage:     state.PageSize,
		Total:       total,
		HasPrevious: state.CurrentPage > 1,
		HasNext:     state.CurrentPage < totalPages,
		PrevPage:    state.CurrentPage - 1,
		NextPage:    state.CurrentPage + 1,
	}
}

// PageRange returns a slice of page numbers for pagination display.
// Returns -1 for ellipsis positions.
func PageRange(currentPage, totalPages int) []int {
	if totalPages <= 7 {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	pages := []int{1}

	start := currentPage - 1
	end := currentPage + 1

	if start <= 2 {
		start = 2
	}
	if end >= totalPages {
		end = totalPages - 1
	}

	if start > 2 {
		pages = append(pages, -1) // ellipsis
	}

	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}

	if end < totalPages-1 {
		pages = append(pages, -1) // ellipsis
	}

	if totalPages > 1 {
		pages = append(pages, totalPages)
	}

	return pages
}
