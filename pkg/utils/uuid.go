package utils

// OrderedPair returns the two ids in lexicographic order. Matches store their
// participants this way so the unique index on (user1_id, user2_id) can
// deduplicate regardless of which side liked last.
func OrderedPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}
