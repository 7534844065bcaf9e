package database

const (
	SortIDAsc       = "asc"
	SortIDDesc      = "desc"
	SortPathNatural = "natural"
)

const DefaultSortID = SortIDAsc

// IsValidSortID checks if a string is a recognized id sort order
func IsValidSortID(order string) bool {
	switch order {
	case SortIDAsc, SortIDDesc:
		return true
	default:
		return false
	}
}

// IsValidSortPath checks if a string is a recognized path sort order
func IsValidSortPath(order string) bool {
	return order == SortPathNatural
}
