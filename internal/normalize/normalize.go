package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Options controls which normalization steps run. The zero value disables
// everything; use DefaultOptions as a starting point.
type Options struct {
	NormalizeUnicode   bool // NFKC composition
	DropPageMarkers    bool // "Page N of M" lines and case-management headers
	NormalizePunct     bool // TeX/typographic quotes and dash conventions
	Dehyphenate        bool // rejoin words broken across line wraps
	CollapseSpaces     bool // runs of horizontal whitespace -> one space
	CollapseBlankLines bool // 3+ newlines -> exactly 2
	StripRepeatedLines bool // generic header/footer heuristic (see generic.go)

	// DropPattern, when set, removes every match before punctuation
	// normalization. Used for repeating captions/footers known to the caller.
	DropPattern *regexp.Regexp
}

// DefaultOptions is the "legal" profile: everything on except the generic
// repeated-line heuristic, which can over-trigger on legitimately repeated
// short phrases.
func DefaultOptions() Options {
	return Options{
		NormalizeUnicode:   true,
		DropPageMarkers:    true,
		NormalizePunct:     true,
		Dehyphenate:        true,
		CollapseSpaces:     true,
		CollapseBlankLines: true,
	}
}

// GenericOptions is the legal profile plus frequency-based removal of any
// repeated header/footer line, for documents without known boilerplate.
func GenericOptions() Options {
	opt := DefaultOptions()
	opt.StripRepeatedLines = true
	return opt
}

var (
	pageOfRE = regexp.MustCompile(`(?mi)^\s*Page\s+\d+\s+of\s+\d+\s*$`)

	// Case-management stamps like
	//   "Case 1:24-cv-01234 Document 12 Filed 03/05/25 Page 3 of 40"
	// which court filing systems burn into every page. The "Filed ... Page"
	// tail sometimes wraps onto its own physical line.
	caseHeaderRE = regexp.MustCompile(`(?mi)^\s*Case\s+\S+\s+Document\s+\d+(?:-\d+)?\s*\n?\s*Filed\s+\S+\s+Page\s+\d+\s+of\s+\d+\s*$`)

	dehyphenRE   = regexp.MustCompile(`(\w)-\n(\w)`)
	hspaceRE     = regexp.MustCompile(`[ \t]+`)
	trailingRE   = regexp.MustCompile(`[ \t]+\n`)
	blankLinesRE = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// Normalize canonicalizes raw extracted text so that non-substantive
// artifacts (pagination, typesetting punctuation, soft hyphenation, stray
// whitespace) never show up as diff noise. It is a pure function and never
// fails: a step whose pattern is absent is a no-op.
//
// Step order matters; later steps assume earlier canonicalization (for
// example the page-marker patterns assume \n line endings).
func Normalize(s string, opt Options) string {
	if opt.NormalizeUnicode {
		s = norm.NFKC.String(s)
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	if opt.DropPageMarkers {
		s = caseHeaderRE.ReplaceAllString(s, "")
		s = pageOfRE.ReplaceAllString(s, "")
	}

	if opt.DropPattern != nil {
		s = opt.DropPattern.ReplaceAllString(s, "")
	}

	if opt.NormalizePunct {
		// TeX quotes, then typographic quotes, to plain ASCII.
		s = strings.ReplaceAll(s, "``", `"`)
		s = strings.ReplaceAll(s, "''", `"`)
		s = strings.NewReplacer(
			"“", `"`, "”", `"`,
			"‘", "'", "’", "'",
		).Replace(s)
		// Hyphen runs to typographic dashes: a single convention on both
		// sides means two typesetting passes never register a phantom diff.
		s = strings.ReplaceAll(s, "---", "—")
		s = strings.ReplaceAll(s, "--", "–")
	}

	if opt.Dehyphenate {
		// "inter-\nnational" -> "international"
		s = dehyphenRE.ReplaceAllString(s, "$1$2")
	}

	if opt.CollapseSpaces {
		s = strings.ReplaceAll(s, " ", " ")
		s = hspaceRE.ReplaceAllString(s, " ")
		s = trailingRE.ReplaceAllString(s, "\n")
	}

	if opt.StripRepeatedLines {
		s = stripRepeatedLines(s)
	}

	if opt.CollapseBlankLines {
		s = blankLinesRE.ReplaceAllString(s, "\n\n")
	}

	return strings.TrimSpace(s)
}
