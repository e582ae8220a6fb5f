package entity

// FavoriteSet is a set of country identifiers.
// No referential integrity is enforced against the live directory: an identifier
// may outlive the country it names.
type FavoriteSet map[string]struct{}

// NewFavoriteSet builds a set from the given identifiers.
func NewFavoriteSet(codes ...string) FavoriteSet {
	set := make(FavoriteSet, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

// Contains reports whether code is in the set. A nil set contains nothing.
func (s FavoriteSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Len returns the number of identifiers in the set.
func (s FavoriteSet) Len() int {
	return len(s)
}
