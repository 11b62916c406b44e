// Package version allocates and orders version identifiers of the form
// prefix + positive integer (v1, v2, ...) from on-disk state.
//
// Allocation is a pure read of the directory listing at call time. Two
// concurrent invocations against the same output directory can both compute
// the same next identifier; this tool is single-writer and does not lock.
package version

import (
	"os"
	"sort"
	"strconv"
	"strings"
)

// Number parses the integer suffix of a version identifier. The prefix is
// matched as an opaque string, never as a pattern. Returns false for
// identifiers that do not carry a parseable non-negative suffix.
func Number(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	suffix := id[len(prefix):]
	if suffix == "" {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Next computes the next version identifier for outputDir: one past the
// highest existing integer suffix, or prefix+"1" when none exist. Directories
// with non-numeric suffixes are ignored; a missing outputDir is not an error.
func Next(outputDir, prefix string) string {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return prefix + "1"
	}

	max := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if n, ok := Number(entry.Name(), prefix); ok && n > max {
			max = n
		}
	}
	return prefix + strconv.Itoa(max+1)
}

// Sort orders version identifiers ascending by numeric suffix in place.
// Identifiers without a parseable suffix sort first.
func Sort(ids []string, prefix string) {
	sort.Slice(ids, func(i, j int) bool {
		ni, _ := Number(ids[i], prefix)
		nj, _ := Number(ids[j], prefix)
		return ni < nj
	})
}
