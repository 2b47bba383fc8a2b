package btree

// minKeyCount returns ⌈m/2⌉ − 1, the minimum key count for a non-root
// node of order m.
func minKeyCount(order int) int {
	return (order+1)/2 - 1
}

// findKeyIndex returns the index of the first key in keys that is >=
// value under cmp, or len(keys) if every key is smaller.
func findKeyIndex(keys []string, value string, cmp Comparator) int {
	for i, k := range keys {
		if cmp(k, value) >= 0 {
			return i
		}
	}
	return len(keys)
}

func insertStringAt(s []string, idx int, v string) []string {
	s = append(s, "")
	copy(s[idx+1:], s[idx:len(s)-1])
	s[idx] = v
	return s
}

func removeStringAt(s []string, idx int) []string {
	copy(s[idx:], s[idx+1:])
	return s[:len(s)-1]
}

func insertInt64At(s []int64, idx int, v int64) []int64 {
	s = append(s, 0)
	copy(s[idx+1:], s[idx:len(s)-1])
	s[idx] = v
	return s
}

func removeInt64At(s []int64, idx int) []int64 {
	copy(s[idx:], s[idx+1:])
	return s[:len(s)-1]
}
