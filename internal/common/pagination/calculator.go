// Package pagination provides page arithmetic for fixed-size pages over an
// in-memory result set.
package pagination

// CalculateOffset calculates the index of the first item on a page.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Formula: offset = (page - 1) * limit
//
// Examples:
//   - Page 1, Limit 12 -> Offset 0
//   - Page 2, Limit 12 -> Offset 12
//   - Page 3, Limit 10 -> Offset 20
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages calculates the total number of pages based on total items and limit.
// Uses ceiling division to ensure all items are included.
//
// Special cases:
//   - If total is 0, returns 1 (always at least 1 page)
//   - If total < limit, returns 1
//   - Otherwise, returns ceil(total / limit)
//
// Examples:
//   - Total 0, Limit 12 -> 1 page
//   - Total 12, Limit 12 -> 1 page
//   - Total 13, Limit 12 -> 2 pages
//   - Total 250, Limit 12 -> 21 pages
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1 // Always at least 1 page
	}
	// Ceiling division: (total + limit - 1) / limit
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return totalPages
}

// ClampPage returns page limited to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
