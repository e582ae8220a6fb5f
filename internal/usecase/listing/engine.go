package listing

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"country-explorer/internal/common/pagination"
	"country-explorer/internal/domain/entity"
	"country-explorer/internal/observability/metrics"
)

// PageSize is the number of countries per page.
const PageSize = 12

// Page is one evaluated listing page.
type Page struct {
	Items []entity.Country
	Meta  pagination.Metadata
	// Empty is true when nothing matched the query. It is a valid result, not an error.
	Empty bool
}

// Engine evaluates queries against a directory. The zero value collates
// names with the root locale.
type Engine struct {
	Collation language.Tag
}

// Apply filters by view, then search text, then region, sorts stably and
// returns the requested page. countries is not modified.
func (e Engine) Apply(countries []entity.Country, q Query, favorites entity.FavoriteSet) Page {
	view, sortKey := q.view(), q.sortKey()

	matched := make([]entity.Country, 0, len(countries))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	region := q.region()
	for i := range countries {
		c := &countries[i]
		if view == ViewFavorites && !favorites.Contains(c.Code) {
			continue
		}
		if !matchesSearch(c, search) {
			continue
		}
		if region != RegionAll && c.Region != string(region) {
			continue
		}
		matched = append(matched, *c)
	}

	slices.SortStableFunc(matched, e.compare(sortKey))
	metrics.RecordListingQuery(string(view), string(sortKey), len(matched))

	items, meta := pagination.Paginate(matched, pagination.Params{Page: q.Page, Limit: PageSize})
	return Page{Items: items, Meta: meta, Empty: len(matched) == 0}
}

// matchesSearch reports whether the common name or capital contains search.
// search must already be lower-cased.
func matchesSearch(c *entity.Country, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.CommonName), search) {
		return true
	}
	return c.HasCapital() && strings.Contains(strings.ToLower(c.Capital), search)
}

func (e Engine) compare(key SortKey) func(a, b entity.Country) int {
	switch key {
	case SortByPopulation:
		return func(a, b entity.Country) int {
			return cmp.Compare(b.Population, a.Population)
		}
	case SortByArea:
		return func(a, b entity.Country) int {
			return cmp.Compare(b.AreaOrZero(), a.AreaOrZero())
		}
	default:
		// Collator keeps internal buffers; one per evaluation.
		col := collate.New(e.Collation)
		return func(a, b entity.Country) int {
			return col.CompareString(a.CommonName, b.CommonName)
		}
	}
}
