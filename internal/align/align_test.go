package align

import (
	"strings"
	"testing"

	"github.com/dgallion1/redline/internal/chunker"
)

func mkChunks(bodies ...string) []chunker.Chunk {
	chunks := make([]chunker.Chunk, len(bodies))
	for i, b := range bodies {
		chunks[i] = chunker.Chunk{Anchor: firstLine(b), Body: b, Order: i}
	}
	return chunks
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}

func TestAlign_IdenticalSequencesAllMatched(t *testing.T) {
	old := mkChunks("1. One.", "2. Two.", "3. Three.")
	new := mkChunks("1. One.", "2. Two.", "3. Three.")
	pairs := Align(old, new, DefaultThreshold)

	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}
	for i, p := range pairs {
		if !p.Matched() {
			t.Errorf("pair %d: expected matched, got %+v", i, p)
		}
		if p.Old.Order != i || p.New.Order != i {
			t.Errorf("pair %d: expected orders %d/%d, got %d/%d", i, i, i, p.Old.Order, p.New.Order)
		}
	}
}

func TestAlign_DeletionAndInsertion(t *testing.T) {
	old := mkChunks("1. One.", "24. Foo bar baz.", "3. Three.")
	new := mkChunks("1. One.", "3. Three.", "4. Four.")
	pairs := Align(old, new, DefaultThreshold)

	var deleted, inserted []string
	for _, p := range pairs {
		switch {
		case p.New == nil:
			deleted = append(deleted, p.Old.Anchor)
		case p.Old == nil:
			inserted = append(inserted, p.New.Anchor)
		}
	}
	if len(deleted) != 1 || deleted[0] != "24. Foo bar baz." {
		t.Errorf("expected one deletion of the unmatched paragraph, got %q", deleted)
	}
	if len(inserted) != 1 || inserted[0] != "4. Four." {
		t.Errorf("expected one insertion, got %q", inserted)
	}
}

func TestAlign_ReplaceRunPairsBySimilarity(t *testing.T) {
	// Renumbered paragraphs: anchors all differ, bodies barely change.
	old := mkChunks(
		"12. Plaintiff entered into a written agreement with defendant on March 1.",
		"13. Defendant failed to perform its obligations under that agreement.",
	)
	new := mkChunks(
		"14. Plaintiff entered into a written agreement with defendant on March 5.",
		"15. Defendant failed to perform any of its obligations under that agreement.",
	)
	pairs := Align(old, new, DefaultThreshold)

	if len(pairs) != 2 {
		t.Fatalf("expected 2 matched pairs, got %d: %+v", len(pairs), pairs)
	}
	for i, p := range pairs {
		if !p.Matched() {
			t.Fatalf("pair %d: expected similarity match, got %+v", i, p)
		}
		if p.Old.Order != i || p.New.Order != i {
			t.Errorf("pair %d: out of order pairing %d/%d", i, p.Old.Order, p.New.Order)
		}
	}
}

func TestAlign_ReplaceRunBelowThresholdSplits(t *testing.T) {
	old := mkChunks("24. Foo bar baz.")
	new := mkChunks("98. Entirely unrelated replacement text about something else.")
	pairs := Align(old, new, DefaultThreshold)

	if len(pairs) != 2 {
		t.Fatalf("expected delete+insert, got %d pairs", len(pairs))
	}
	if pairs[0].New != nil || pairs[0].Old.Anchor != "24. Foo bar baz." {
		t.Errorf("expected old-only pair first, got %+v", pairs[0])
	}
	if pairs[1].Old != nil || pairs[1].New.Anchor != "98. Entirely unrelated replacement text about something else." {
		t.Errorf("expected new-only pair second, got %+v", pairs[1])
	}
}

func TestAlign_Totality(t *testing.T) {
	old := mkChunks("I. INTRO", "5. Alpha beta gamma delta.", "6. Epsilon zeta.", "COUNT I")
	new := mkChunks("I. INTRO", "5. Alpha beta gamma delta epsilon.", "7. Theta iota kappa.", "COUNT I", "8. New tail.")
	pairs := Align(old, new, DefaultThreshold)

	oldSeen := make(map[int]int)
	newSeen := make(map[int]int)
	for _, p := range pairs {
		if p.Old == nil && p.New == nil {
			t.Fatal("pair with both sides nil")
		}
		if p.Old != nil {
			oldSeen[p.Old.Order]++
		}
		if p.New != nil {
			newSeen[p.New.Order]++
		}
	}
	for i := range old {
		if oldSeen[i] != 1 {
			t.Errorf("old chunk %d appears %d times", i, oldSeen[i])
		}
	}
	for j := range new {
		if newSeen[j] != 1 {
			t.Errorf("new chunk %d appears %d times", j, newSeen[j])
		}
	}
}

func TestAlign_OrderPreservation(t *testing.T) {
	old := mkChunks("A HEADING", "2. Old body about contracts and damages.", "3. Another old paragraph entirely.", "Z HEADING")
	new := mkChunks("A HEADING", "4. New body about contracts and damages.", "5. Fresh insertion with novel content.", "Z HEADING")
	pairs := Align(old, new, DefaultThreshold)

	lastOld, lastNew := -1, -1
	for i, p := range pairs {
		if p.Old != nil {
			if p.Old.Order <= lastOld {
				t.Errorf("pair %d: old order %d not increasing past %d", i, p.Old.Order, lastOld)
			}
			lastOld = p.Old.Order
		}
		if p.New != nil {
			if p.New.Order <= lastNew {
				t.Errorf("pair %d: new order %d not increasing past %d", i, p.New.Order, lastNew)
			}
			lastNew = p.New.Order
		}
	}
}

func TestAlign_ThresholdMonotonicity(t *testing.T) {
	old := mkChunks("12. Plaintiff entered into a written agreement with defendant.")
	new := mkChunks("14. Plaintiff entered into an oral agreement with defendant.")

	matchedAt := func(threshold float64) int {
		n := 0
		for _, p := range Align(old, new, threshold) {
			if p.Matched() {
				n++
			}
		}
		return n
	}

	low := matchedAt(0.35)
	high := matchedAt(0.99)
	if low < high {
		t.Errorf("raising the threshold must never create matches: %d at 0.35, %d at 0.99", low, high)
	}
	if low != 1 {
		t.Errorf("expected a similarity match at the default threshold, got %d", low)
	}
	if high != 0 {
		t.Errorf("expected no match at 0.99 for reworded text, got %d", high)
	}
}

func TestAlign_RaisingThresholdOnlyRemovesMatches(t *testing.T) {
	// A two-chunk replace run where a failed claim at a strict threshold
	// would otherwise free its new chunk for the next old chunk: the first
	// old chunk's best candidate is the second new chunk (ratio 0.50), the
	// second old chunk scores 0.667 against the first new chunk. The claim
	// structure must not depend on the threshold, or tightening it would
	// manufacture the crossing 0.667 pairing out of nothing.
	old := mkChunks(
		"alpha beta",
		"karma sutra zeta one",
	)
	new := mkChunks(
		"zeta one",
		"alpha beta one two three four",
	)

	matchedAt := func(threshold float64) map[string]string {
		m := make(map[string]string)
		for _, p := range Align(old, new, threshold) {
			if p.Matched() {
				m[p.Old.Body] = p.New.Body
			}
		}
		return m
	}

	low := matchedAt(0.35)
	high := matchedAt(0.60)

	if len(low) != 1 || low["alpha beta"] != "alpha beta one two three four" {
		t.Fatalf("at 0.35 expected the single 0.50 pairing, got %v", low)
	}
	for o, n := range high {
		if low[o] != n {
			t.Errorf("raising the threshold created the pairing %q -> %q", o, n)
		}
	}
}

func TestAlign_EmptySides(t *testing.T) {
	chunks := mkChunks("1. Alpha.", "2. Beta.")

	pairs := Align(nil, chunks, DefaultThreshold)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 insertion pairs, got %d", len(pairs))
	}
	for _, p := range pairs {
		if p.Old != nil {
			t.Errorf("expected new-only pairs for empty old side, got %+v", p)
		}
	}

	pairs = Align(chunks, nil, DefaultThreshold)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 deletion pairs, got %d", len(pairs))
	}
	for _, p := range pairs {
		if p.New != nil {
			t.Errorf("expected old-only pairs for empty new side, got %+v", p)
		}
	}

	if pairs := Align(nil, nil, DefaultThreshold); len(pairs) != 0 {
		t.Errorf("expected no pairs for two empty sides, got %d", len(pairs))
	}
}

func TestAlign_DuplicateAnchorsPairPositionally(t *testing.T) {
	// Two paragraphs both anchored "1." — a documented ambiguity resolved
	// by positional pairing, not an error.
	old := []chunker.Chunk{
		{Anchor: "1.", Body: "1. First duplicate body.", Order: 0},
		{Anchor: "1.", Body: "1. Second duplicate body.", Order: 1},
	}
	new := []chunker.Chunk{
		{Anchor: "1.", Body: "1. First duplicate body.", Order: 0},
		{Anchor: "1.", Body: "1. Second duplicate body, amended.", Order: 1},
	}
	pairs := Align(old, new, DefaultThreshold)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	for i, p := range pairs {
		if !p.Matched() || p.Old.Order != i || p.New.Order != i {
			t.Errorf("pair %d: expected positional match, got %+v", i, p)
		}
	}
}

func TestSimilarity_LongBodiesWithCommonWords(t *testing.T) {
	// Over 200 word tokens with "the" well past difflib's autojunk
	// popularity bar. A one-word rewrite must still score near 1; if the
	// frequent words dropped out of the matching, a legitimate paragraph
	// revision would fall under the pairing threshold and split.
	sentence := "The plaintiff served the notice on the defendant at the registered office. "
	body := strings.Repeat(sentence, 20)
	got := Similarity(body+"The court granted the motion.",
		body+"The court denied the motion.")
	if got < 0.9 {
		t.Errorf("near-identical long bodies: expected ratio near 1, got %f", got)
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	if got := Similarity("", ""); got != 1 {
		t.Errorf("two empty bodies: expected 1, got %f", got)
	}
	if got := Similarity("something", ""); got != 0 {
		t.Errorf("one empty body: expected 0, got %f", got)
	}
	if got := Similarity("alpha beta gamma", "alpha beta gamma"); got != 1 {
		t.Errorf("identical bodies: expected 1, got %f", got)
	}
	got := Similarity("alpha beta gamma", "delta epsilon zeta")
	if got < 0 || got >= 0.35 {
		t.Errorf("unrelated bodies: expected low ratio, got %f", got)
	}
}
