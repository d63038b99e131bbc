// Package render turns a comparison result into a redline HTML document:
// unchanged text plain, deletions red strikethrough, insertions blue
// underline, whole-chunk deletions and insertions as bordered blocks. It is
// purely a formatting pass — pair order and span content arrive final and
// leave untouched.
package render

import (
	"html"
	"html/template"
	"strings"

	"github.com/dgallion1/redline/internal/inline"
	"github.com/dgallion1/redline/internal/redline"
)

var page = template.Must(template.New("redline").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Redline Comparison</title>
<style>
  body {
    font-family: Arial, Helvetica, sans-serif;
    font-size: 11pt;
    line-height: 1.25;
    margin: 1in;
  }
  h1 {
    font-size: 14pt;
    margin: 0 0 0.25in 0;
  }
  .meta {
    font-size: 9.5pt;
    color: #444;
    margin-bottom: 0.25in;
  }
  p {
    margin: 0 0 0.12in 0;
  }
  del.del {
    color: #b00020;
    text-decoration: line-through;
  }
  ins.ins {
    color: #0b57d0;
    text-decoration: underline;
  }
  .blockdel {
    border-left: 3px solid #b00020; padding-left: 10px;
  }
  .blockins {
    border-left: 3px solid #0b57d0; padding-left: 10px;
  }
  .sep {
    margin: 0.18in 0;
    border-top: 1px solid #ddd;
  }
</style>
</head>
<body>
  <h1>Redline Comparison</h1>
  <div class="meta">
    <div><strong>Old:</strong> {{.OldName}}</div>
    <div><strong>New:</strong> {{.NewName}}</div>
  </div>
  {{.Body}}
</body>
</html>
`))

// HTML renders a full redline page. oldName and newName label the two
// versions in the header.
func HTML(res *redline.Result, oldName, newName string) string {
	var parts []string
	for _, pd := range res.Pairs {
		switch {
		case pd.Pair.Matched():
			parts = append(parts, wrapP(nlToHTML(spansHTML(pd.Spans))))
		case pd.Pair.Old != nil:
			inner := `<del class="del">` + html.EscapeString(pd.Pair.Old.Body) + `</del>`
			parts = append(parts, `<div class="blockdel">`+wrapP(nlToHTML(inner))+`</div>`)
		default:
			inner := `<ins class="ins">` + html.EscapeString(pd.Pair.New.Body) + `</ins>`
			parts = append(parts, `<div class="blockins">`+wrapP(nlToHTML(inner))+`</div>`)
		}
		parts = append(parts, `<div class="sep"></div>`)
	}

	var out strings.Builder
	_ = page.Execute(&out, struct {
		OldName, NewName string
		Body             template.HTML
	}{
		OldName: oldName,
		NewName: newName,
		Body:    template.HTML(strings.Join(parts, "\n")),
	})
	return out.String()
}

// spansHTML emits inline marked-up text for one matched pair.
func spansHTML(spans []inline.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		esc := html.EscapeString(s.Text)
		switch s.Kind {
		case inline.Equal:
			sb.WriteString(esc)
		case inline.Delete:
			sb.WriteString(`<del class="del">` + esc + `</del>`)
		case inline.Insert:
			sb.WriteString(`<ins class="ins">` + esc + `</ins>`)
		}
	}
	return sb.String()
}

// nlToHTML converts newlines to readable HTML while preserving paragraphs.
func nlToHTML(s string) string {
	s = strings.ReplaceAll(s, "\n\n", "</p><p>")
	return strings.ReplaceAll(s, "\n", "<br>")
}

func wrapP(inner string) string {
	return "<p>" + inner + "</p>"
}
