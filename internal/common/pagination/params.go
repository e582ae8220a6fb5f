package pagination

// Params represents a page request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// Paginate returns the items of the requested page together with its metadata.
// A page outside [1, TotalPages] is clamped and Metadata.Page reports the page
// actually returned. The returned slice shares its backing array with items.
func Paginate[T any](items []T, params Params) ([]T, Metadata) {
	limit := params.Limit
	if limit < 1 {
		limit = 1
	}

	total := len(items)
	totalPages := CalculateTotalPages(int64(total), limit)
	page := ClampPage(params.Page, totalPages)

	start := CalculateOffset(page, limit)
	end := min(start+limit, total)
	if start > total {
		start = total
	}

	meta := Metadata{
		Total:      int64(total),
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
	if end > start {
		meta.From = start + 1
		meta.To = end
	}

	return items[start:end:end], meta
}
