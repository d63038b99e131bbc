// Package inline produces the fine-grained equal/delete/insert span
// decomposition inside one aligned chunk pair. Two interchangeable
// strategies exist: token-level (word granularity, whitespace invisible)
// and character-level semantic (diff-match-patch with cleanup passes and a
// wall-clock budget).
package inline

import (
	"fmt"
	"strings"
)

// Kind classifies a span.
type Kind int

const (
	Equal Kind = iota
	Delete
	Insert
)

func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Span is a typed run of text. For a matched chunk pair, concatenating all
// Equal and Delete spans reproduces the old body and all Equal and Insert
// spans reproduce the new body (for the token strategy, modulo whitespace,
// which word tokenization discards by design).
type Span struct {
	Kind Kind
	Text string
}

// Whole wraps an unmatched chunk body as a single one-sided span. No
// diffing happens for chunks with no counterpart.
func Whole(kind Kind, body string) []Span {
	if body == "" {
		return nil
	}
	return []Span{{Kind: kind, Text: body}}
}

// checkRoundTrip panics if the span sequence fails to reconstruct both
// sides. A mismatch is a defect in the differ, never a condition reachable
// from valid input. stripSpace relaxes the check to ignore whitespace, for
// the token strategy.
func checkRoundTrip(spans []Span, old, new string, stripSpace bool) {
	var ob, nb strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case Equal:
			ob.WriteString(s.Text)
			nb.WriteString(s.Text)
		case Delete:
			ob.WriteString(s.Text)
		case Insert:
			nb.WriteString(s.Text)
		}
	}
	gotOld, gotNew := ob.String(), nb.String()
	if stripSpace {
		gotOld, old = stripWhitespace(gotOld), stripWhitespace(old)
		gotNew, new = stripWhitespace(gotNew), stripWhitespace(new)
	}
	if gotOld != old {
		panic(fmt.Errorf("inline: old side fails round-trip: %q != %q", gotOld, old))
	}
	if gotNew != new {
		panic(fmt.Errorf("inline: new side fails round-trip: %q != %q", gotNew, new))
	}
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, s)
}
