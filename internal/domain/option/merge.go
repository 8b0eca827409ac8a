// Where: internal/domain/option/merge.go
// What: Option set merge with full-attribute deduplication.
// Why: Combine local and remote options without introducing duplicates.
package option

import "sort"

// Merge concatenates local then remote and keeps the first record of every
// equality class. The result is stable-sorted by equality key so the same
// inputs always produce the same order.
func Merge(local, remote Collection) Collection {
	seen := make(map[string]struct{}, len(local)+len(remote))
	merged := make(Collection, 0, len(local)+len(remote))
	for _, source := range []Collection{local, remote} {
		for _, record := range source {
			key := record.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, record)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Key() < merged[j].Key()
	})
	return merged
}

// Added returns the records of merged that remote does not contain.
func Added(merged, remote Collection) Collection {
	existing := make(map[string]struct{}, len(remote))
	for _, record := range remote {
		existing[record.Key()] = struct{}{}
	}
	var added Collection
	for _, record := range merged {
		if _, ok := existing[record.Key()]; ok {
			continue
		}
		added = append(added, record)
	}
	return added
}
