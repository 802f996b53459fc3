package bulkfilehash

import "sort"

// DuplicateGroup represents a group of files with the same hash
type DuplicateGroup struct {
	Hash  string   `json:"hash"`
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// FindDuplicates groups successful results by digest and returns the groups
// holding more than one file. Files inside a group keep the order of the
// results; groups are sorted by their first file.
func FindDuplicates(results []HashResult) []DuplicateGroup {
	defer VerboseEnter()()

	byDigest := make(map[string][]string)
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		byDigest[result.Digest] = append(byDigest[result.Digest], result.Path)
	}

	var groups []DuplicateGroup
	for digest, files := range byDigest {
		if len(files) > 1 {
			groups = append(groups, DuplicateGroup{
				Hash:  digest,
				Files: files,
				Count: len(files),
			})
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Files[0] < groups[j].Files[0]
	})

	VerboseLog(1, "found %d duplicate groups across %d results", len(groups), len(results))

	return groups
}
