package inline

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dgallion1/redline/internal/chunker"
)

// Tokens diffs two chunk bodies at word granularity. Both sides are
// segmented into word and punctuation tokens (whitespace discarded, so
// whitespace-only edits never show), the token sequences go through an LCS
// opcode decomposition, and span text is rebuilt with a single-space rule:
// a space between two alphanumeric tokens or after sentence-ending
// punctuation before a word, nothing otherwise.
func Tokens(old, new string) []Span {
	a := chunker.Words(old)
	b := chunker.Words(new)

	var spans []Span
	prev := ""
	emit := func(kind Kind, toks []string) {
		if len(toks) == 0 {
			return
		}
		var sb strings.Builder
		for _, tok := range toks {
			if needSpace(prev, tok) {
				sb.WriteByte(' ')
			}
			sb.WriteString(tok)
			prev = tok
		}
		spans = append(spans, Span{Kind: kind, Text: sb.String()})
	}

	// Autojunk off: its popularity heuristic drops frequent word tokens on
	// sequences past 200 elements and desynchronizes long paragraphs.
	m := difflib.NewMatcherWithJunk(a, b, false, nil)
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			emit(Equal, a[op.I1:op.I2])
		case 'd':
			emit(Delete, a[op.I1:op.I2])
		case 'i':
			emit(Insert, b[op.J1:op.J2])
		case 'r':
			emit(Delete, a[op.I1:op.I2])
			emit(Insert, b[op.J1:op.J2])
		}
	}

	checkRoundTrip(spans, old, new, true)
	return spans
}

func needSpace(prev, cur string) bool {
	if prev == "" {
		return false
	}
	if !chunker.Alphanumeric(cur) {
		return false
	}
	return chunker.Alphanumeric(prev) || endsSentence(prev)
}

func endsSentence(tok string) bool {
	switch tok[len(tok)-1] {
	case '.', '!', '?', ':', ';', ',':
		return true
	}
	return false
}
