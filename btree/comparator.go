package btree

import "strings"

// Comparator orders two keys: negative if a < b, zero if equal, positive
// if a > b.
type Comparator func(a, b string) int

// DefaultComparator orders keys lexicographically on code points (ordinary
// Go string comparison).
func DefaultComparator(a, b string) int {
	return strings.Compare(a, b)
}
