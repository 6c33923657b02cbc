package algo

import (
	"sort"

	"github.com/repopulse/repopulse/schema"
)

// RankHotspots sorts files by total changed lines in descending order and
// returns the top 'limit' files. If limit is greater than the number of
// files, all files are returned in sorted order. Ties break on commit
// count, then path, to keep the ranking deterministic.
func RankHotspots(files []schema.HotspotFile, limit int) []schema.HotspotFile {
	sort.Slice(files, func(i, j int) bool {
		if files[i].ChangedLines != files[j].ChangedLines {
			return files[i].ChangedLines > files[j].ChangedLines
		}
		if files[i].Commits != files[j].Commits {
			return files[i].Commits > files[j].Commits
		}
		return files[i].Path < files[j].Path
	})
	if len(files) > limit {
		return files[:limit]
	}
	return files
}
