package normalize

import "strings"

// Repeated-line stripping bounds. A candidate line must appear at least
// minRepeats times and account for at least repeatFraction of non-blank
// lines before it is treated as boilerplate.
const (
	minRepeats     = 5
	repeatFraction = 0.10
	minLineLen     = 3
	maxLineLen     = 80
)

// stripRepeatedLines removes any line repeated above a frequency threshold.
// This catches headers and footers in documents without a known boilerplate
// pattern, at the cost of occasionally eating a legitimately repeated short
// phrase, which is why it only runs in the generic profile.
func stripRepeatedLines(s string) string {
	lines := strings.Split(s, "\n")

	counts := make(map[string]int)
	nonBlank := 0
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		nonBlank++
		if len(t) >= minLineLen && len(t) <= maxLineLen {
			counts[t]++
		}
	}
	if nonBlank == 0 {
		return s
	}

	drop := make(map[string]bool)
	for line, n := range counts {
		if n >= minRepeats && float64(n) >= repeatFraction*float64(nonBlank) {
			drop[line] = true
		}
	}
	if len(drop) == 0 {
		return s
	}

	kept := lines[:0]
	for _, line := range lines {
		if drop[strings.TrimSpace(line)] {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
