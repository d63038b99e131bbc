package inline

import (
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultTimeout bounds the character-level diff per chunk pair. The budget
// is enforced per call so one pathological pair cannot stall a comparison.
const DefaultTimeout = 2 * time.Second

// Semantic diffs two chunk bodies character by character under a wall-clock
// budget, then runs two cleanup passes: semantic cleanup shifts edit
// boundaries onto word boundaries for readability, and efficiency cleanup
// merges small edits separated by short equal runs so the output does not
// flicker between tiny alternating spans.
//
// The second return value reports whether the budget ran out. On exhaustion
// diff-match-patch keeps the best decomposition found so far — a coarser but
// still valid result, never an error. Round-trip reconstruction holds either
// way.
func Semantic(old, new string, timeout time.Duration) ([]Span, bool) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout

	start := time.Now()
	diffs := dmp.DiffMain(old, new, false)
	degraded := time.Since(start) >= timeout

	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCleanupEfficiency(diffs)

	var spans []Span
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			spans = append(spans, Span{Kind: Equal, Text: d.Text})
		case diffmatchpatch.DiffDelete:
			spans = append(spans, Span{Kind: Delete, Text: d.Text})
		case diffmatchpatch.DiffInsert:
			spans = append(spans, Span{Kind: Insert, Text: d.Text})
		}
	}

	checkRoundTrip(spans, old, new, false)
	return spans, degraded
}
