// Package lineset implements the in-memory line set: parsing file content
// into lines, merging additions and normalizing the result into a sorted,
// duplicate-free sequence.
package lineset

import (
	"slices"
	"strings"
)

// EmptyAdditionWarning is reported once for every empty addition.
const EmptyAdditionWarning = "empty string passed as addition, skipping."

// Parse splits content into lines. A trailing "\r" is stripped from each line
// and empty lines are dropped.
func Parse(content string) []string {
	if content == "" {
		return []string{}
	}
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Merge returns a new slice holding lines followed by every non-empty
// addition, in order. warn is called once per empty addition. Duplicates are
// kept; Normalize removes them.
func Merge(lines, additions []string, warn func(string)) []string {
	merged := make([]string, 0, len(lines)+len(additions))
	merged = append(merged, lines...)
	for _, addition := range additions {
		if addition == "" {
			if warn != nil {
				warn(EmptyAdditionWarning)
			}
			continue
		}
		merged = append(merged, addition)
	}
	return merged
}

// Normalize sorts lines in place by byte-wise comparison and removes
// duplicates. The returned slice is strictly ascending.
func Normalize(lines []string) []string {
	slices.Sort(lines)
	return slices.Compact(lines)
}

// Equal reports whether a and b hold the same lines in the same order.
func Equal(a, b []string) bool {
	return slices.Equal(a, b)
}

// Format renders lines as file content: one line per terminator, with a
// terminator after the last line. No lines render to no bytes.
func Format(lines []string) []byte {
	if len(lines) == 0 {
		return []byte{}
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Delta is the signed difference in line count between final and original.
func Delta(original, final []string) int {
	return len(final) - len(original)
}
