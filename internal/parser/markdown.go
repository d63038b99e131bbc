package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings come out as
// their own lines and ordered-list items keep their "N." markers, so the
// chunker's structural markers survive extraction.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var out strings.Builder
	appendBlock := func(block string) {
		block = strings.TrimSpace(block)
		if block == "" {
			return
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(block)
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if list, ok := n.(*ast.List); ok {
			num := list.Start
			for item := list.FirstChild(); item != nil; item = item.NextSibling() {
				body := extractText(item, src)
				if list.IsOrdered() {
					appendBlock(fmt.Sprintf("%d. %s", num, body))
					num++
				} else {
					appendBlock(body)
				}
			}
			continue
		}
		appendBlock(extractText(n, src))
	}
	return out.String(), nil
}

// extractText flattens a goldmark AST node to plain text. Nodes with inline
// children yield the children's text (markdown syntax stripped); leaf blocks
// such as code blocks yield their raw source lines.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.HasChildren() {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
				continue
			}
			s := extractText(c, src)
			if s == "" {
				continue
			}
			if buf.Len() > 0 && c.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
			buf.WriteString(s)
		}
	} else if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
	}
	return strings.TrimSpace(buf.String())
}
