package chunker

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// Words segments text into word and punctuation tokens per UAX #29,
// discarding whitespace-only segments. Whitespace-only differences between
// two documents are therefore invisible to anything built on this tokenizer.
func Words(text string) []string {
	var toks []string
	iter := words.FromString(text)
	for iter.Next() {
		tok := iter.Value()
		if strings.TrimSpace(tok) == "" {
			continue
		}
		toks = append(toks, tok)
	}
	return toks
}

// Alphanumeric reports whether a token starts with a letter or digit.
func Alphanumeric(tok string) bool {
	for _, r := range tok {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return false
}
