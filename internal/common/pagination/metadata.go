package pagination

// Metadata describes one page of a result set.
type Metadata struct {
	Total      int64 `json:"total"`       // Total number of items across all pages
	Page       int   `json:"page"`        // Current page number (1-based)
	Limit      int   `json:"limit"`       // Items per page
	TotalPages int   `json:"total_pages"` // Calculated total number of pages
	From       int   `json:"from"`        // 1-based index of the first item shown, 0 when empty
	To         int   `json:"to"`          // 1-based index of the last item shown, 0 when empty
}

// HasNext reports whether a page follows the current one.
func (m Metadata) HasNext() bool {
	return m.Page < m.TotalPages
}

// HasPrev reports whether a page precedes the current one.
func (m Metadata) HasPrev() bool {
	return m.Page > 1
}
