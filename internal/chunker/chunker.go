package chunker

import "strings"

// Chunk is a contiguous span of a document tied to one structural marker.
// Anchor is the trimmed first line and serves as the chunk's identity key
// for alignment; Body is the full chunk text including the anchor line.
// Order is the zero-based position within the source document.
type Chunk struct {
	Anchor string
	Body   string
	Order  int
}

// Split partitions normalized text into an ordered chunk sequence using the
// given boundary matcher. Each chunk runs from one boundary's start to the
// next boundary's start; the final chunk runs to end of document. Text ahead
// of the first boundary becomes a leading chunk anchored on its own first
// line, so that concatenating all bodies reproduces the document (minus the
// inter-chunk newlines trimmed here).
//
// If nothing matches at all, the whole document comes back as a single chunk
// anchored "DOCUMENT" — degenerate but well-defined, so the aligner never
// sees an empty sequence for a non-empty document.
func Split(text string, b BoundaryMatcher) []Chunk {
	if b == nil {
		b = Pleading
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	starts := b.Boundaries(text)
	if len(starts) == 0 {
		return []Chunk{{Anchor: "DOCUMENT", Body: text, Order: 0}}
	}

	if starts[0] > 0 && strings.TrimSpace(text[:starts[0]]) != "" {
		starts = append([]int{0}, starts...)
	}

	chunks := make([]Chunk, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		body := strings.Trim(text[start:end], "\n")
		if body == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Anchor: anchorOf(body),
			Body:   body,
			Order:  len(chunks),
		})
	}
	return chunks
}

// anchorOf returns the trimmed first line. A boundary match that wraps over
// several physical lines still anchors on its first line only: the anchor is
// an alignment key, not display text.
func anchorOf(body string) string {
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[:i]
	}
	return strings.TrimSpace(body)
}

// Anchors projects the anchor sequence out of a chunk sequence.
func Anchors(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Anchor
	}
	return out
}
