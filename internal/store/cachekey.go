package store

import (
	"sort"
	"strings"
)

// CanonicalKey maps (date, topic-set) to the cache key shared by the read and
// write paths. The key is stable under any permutation of topics: ids are
// deduplicated and sorted before joining.
func CanonicalKey(date string, topics []string) string {
	return date + ":" + strings.Join(sortedUnique(topics), ",")
}

func sortedUnique(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
