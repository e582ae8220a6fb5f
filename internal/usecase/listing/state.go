package listing

import "strings"

// State holds the query the user is building. Any change to search, region,
// sort, view or the favorites set returns to page 1. State is not safe for
// concurrent use.
type State struct {
	q          Query
	totalPages int
}

// NewState returns a State holding DefaultQuery.
func NewState() *State {
	return &State{q: DefaultQuery(), totalPages: 1}
}

// Query returns the current query.
func (s *State) Query() Query {
	return s.q
}

// SetSearch sets the search text and reports whether it changed.
func (s *State) SetSearch(text string) bool {
	text = strings.TrimSpace(text)
	if text == s.q.Search {
		return false
	}
	s.q.Search = text
	s.resetPage()
	return true
}

// SetRegion sets the region filter and reports whether it changed.
func (s *State) SetRegion(r Region) bool {
	if r == s.q.Region {
		return false
	}
	s.q.Region = r
	s.resetPage()
	return true
}

// SetSort sets the sort key and reports whether it changed.
func (s *State) SetSort(k SortKey) bool {
	if k == s.q.Sort {
		return false
	}
	s.q.Sort = k
	s.resetPage()
	return true
}

// SetView sets the active view and reports whether it changed.
func (s *State) SetView(v View) bool {
	if v == s.q.View {
		return false
	}
	s.q.View = v
	s.resetPage()
	return true
}

// FavoritesChanged returns to page 1 after the favorites set changed.
func (s *State) FavoritesChanged() {
	s.resetPage()
}

// Observe records the outcome of the last evaluation so that page moves stay
// within range and a clamped page is remembered.
func (s *State) Observe(p Page) {
	s.totalPages = max(p.Meta.TotalPages, 1)
	s.q.Page = p.Meta.Page
}

// SetPage moves to page, clamped to the last observed page count, and returns
// the page now current.
func (s *State) SetPage(page int) int {
	s.q.Page = min(max(page, 1), s.totalPages)
	return s.q.Page
}

// NextPage moves forward one page if possible.
func (s *State) NextPage() int {
	return s.SetPage(s.q.Page + 1)
}

// PrevPage moves back one page if possible.
func (s *State) PrevPage() int {
	return s.SetPage(s.q.Page - 1)
}

func (s *State) resetPage() {
	s.q.Page = 1
}
