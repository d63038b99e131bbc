package parser

import (
	"io"
	"strings"
)

// TextParser handles plain text files. The text passes through untouched;
// canonicalization is the normalizer's job, not extraction's.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (string, error) {
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}
