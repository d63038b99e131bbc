package chunker

import "regexp"

// BoundaryMatcher locates chunk boundaries in normalized text. Structural
// detection is inherently fuzzy regex heuristics, so it stays pluggable:
// alternative document conventions supply their own matcher without the
// aligner or differ changing.
type BoundaryMatcher interface {
	// Boundaries returns the byte offsets where chunks begin, in strictly
	// increasing order.
	Boundaries(text string) []int
}

// RegexBoundary adapts a multiline regexp into a BoundaryMatcher; every
// match start is a boundary.
func RegexBoundary(re *regexp.Regexp) BoundaryMatcher {
	return regexBoundary{re: re}
}

type regexBoundary struct {
	re *regexp.Regexp
}

func (b regexBoundary) Boundaries(text string) []int {
	locs := b.re.FindAllStringIndex(text, -1)
	starts := make([]int, 0, len(locs))
	for _, loc := range locs {
		// Alternatives can overlap a line already claimed; FindAllStringIndex
		// returns non-overlapping leftmost matches, so starts are increasing.
		starts = append(starts, loc[0])
	}
	return starts
}

// Pleading matches the structural markers of US court pleadings:
// Roman-numeral headings ("I. INTRODUCTION"), numbered paragraphs ("23. "),
// COUNT headings, and all-caps heading lines.
var Pleading BoundaryMatcher = RegexBoundary(regexp.MustCompile(
	`(?m)` +
		`^[ \t]*[IVXLCDM]+\.\s+.+$` + // Roman numeral heading
		`|^[ \t]*\d+\.\s+` + // numbered paragraph marker
		`|^[ \t]*COUNT\s+[IVXLCDM]+\b.*$` + // "COUNT III — ..." heading
		`|^[ \t]*[A-Z][A-Z0-9 ,.;:'"()&\-]{3,}$`, // all-caps heading line
))
