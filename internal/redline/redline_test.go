package redline

import (
	"strings"
	"testing"

	"github.com/dgallion1/redline/internal/inline"
)

const oldPleading = `1. Plaintiff is a resident of King County, Washington.

2. Defendant is a corporation organized under the laws of Delaware.

3. On March 1, 2023, the parties executed a written services agreement.

4. Defendant failed to perform its obligations under the agreement.`

const newPleading = `1. Plaintiff is a resident of Pierce County, Washington.

2. Defendant is a corporation organized under the laws of Delaware.

3. On March 5, 2023, the parties executed a written services agreement.

4. Defendant failed to perform its obligations under the agreement.

5. Plaintiff has suffered damages in an amount to be proven at trial.`

func TestCompare_LocalizedEdits(t *testing.T) {
	res := Compare(oldPleading, newPleading, DefaultOptions())

	if res.OldChunks != 4 || res.NewChunks != 5 {
		t.Fatalf("expected 4 old and 5 new chunks, got %d and %d", res.OldChunks, res.NewChunks)
	}
	if len(res.Pairs) != 5 {
		t.Fatalf("expected 5 pairs, got %d", len(res.Pairs))
	}

	// Paragraphs 1 and 3 changed one word each, 2 and 4 are untouched,
	// 5 is new. Every edit must stay inside its own pair.
	for i, pd := range res.Pairs[:4] {
		if !pd.Pair.Matched() {
			t.Fatalf("pair %d: expected matched pair", i)
		}
	}
	if res.Pairs[4].Pair.Old != nil || res.Pairs[4].Pair.New == nil {
		t.Fatal("expected final pair to be insert-only")
	}
	if len(res.Pairs[4].Spans) != 1 || res.Pairs[4].Spans[0].Kind != inline.Insert {
		t.Errorf("insert-only pair must carry one whole-body insert span, got %+v", res.Pairs[4].Spans)
	}

	for _, i := range []int{1, 3} {
		for _, s := range res.Pairs[i].Spans {
			if s.Kind != inline.Equal {
				t.Errorf("pair %d is unchanged but has %v span %q", i, s.Kind, s.Text)
			}
		}
	}
	for _, i := range []int{0, 2} {
		ins, del := 0, 0
		for _, s := range res.Pairs[i].Spans {
			switch s.Kind {
			case inline.Insert:
				ins += len(s.Text)
			case inline.Delete:
				del += len(s.Text)
			}
		}
		if ins == 0 || del == 0 {
			t.Errorf("pair %d: expected both an insertion and a deletion", i)
		}
		if ins > 10 || del > 10 {
			t.Errorf("pair %d: edit not localized (%d inserted, %d deleted)", i, ins, del)
		}
	}
	if !res.Changed() {
		t.Error("Changed() must report true")
	}
}

func TestCompare_IdenticalInputs(t *testing.T) {
	res := Compare(oldPleading, oldPleading, DefaultOptions())

	if len(res.Pairs) != res.OldChunks {
		t.Fatalf("expected %d pairs, got %d", res.OldChunks, len(res.Pairs))
	}
	for i, pd := range res.Pairs {
		if !pd.Pair.Matched() {
			t.Errorf("pair %d: identical inputs must align fully", i)
		}
		for _, s := range pd.Spans {
			if s.Kind != inline.Equal {
				t.Errorf("pair %d: identical inputs produced %v span %q", i, s.Kind, s.Text)
			}
		}
	}
	if res.Changed() {
		t.Error("Changed() must report false for identical inputs")
	}
	if ins, del := res.Stats(); ins != 0 || del != 0 {
		t.Errorf("expected zero stats, got %d inserted, %d deleted", ins, del)
	}
}

func TestCompare_EmptyOldSide(t *testing.T) {
	res := Compare("", newPleading, DefaultOptions())

	if res.OldChunks != 0 {
		t.Fatalf("expected 0 old chunks, got %d", res.OldChunks)
	}
	for i, pd := range res.Pairs {
		if pd.Pair.Old != nil {
			t.Errorf("pair %d: empty old side must yield insert-only pairs", i)
		}
		for _, s := range pd.Spans {
			if s.Kind != inline.Insert {
				t.Errorf("pair %d: expected insert span, got %v", i, s.Kind)
			}
		}
	}
}

func TestCompare_EmptyNewSide(t *testing.T) {
	res := Compare(oldPleading, "", DefaultOptions())

	if res.NewChunks != 0 {
		t.Fatalf("expected 0 new chunks, got %d", res.NewChunks)
	}
	for i, pd := range res.Pairs {
		if pd.Pair.New != nil {
			t.Errorf("pair %d: empty new side must yield delete-only pairs", i)
		}
	}
}

func TestCompare_PageMarkersNeverSurface(t *testing.T) {
	old := "1. First allegation.\n\nPage 3 of 10\n\n2. Second allegation."
	new := "1. First allegation.\n\n2. Second allegation, amended."

	for _, profile := range []Profile{ProfileLegal, ProfileGeneric} {
		opts := DefaultOptions()
		opts.Profile = profile
		res := Compare(old, new, opts)
		for _, pd := range res.Pairs {
			for _, s := range pd.Spans {
				if strings.Contains(s.Text, "Page 3 of 10") {
					t.Errorf("profile %s: page marker leaked into diff output", profile)
				}
			}
		}
	}
}

func TestCompare_TokenStrategy(t *testing.T) {
	opts := DefaultOptions()
	opts.Strategy = StrategyToken
	res := Compare("1. Plaintiff alleges X.", "1. Plaintiff alleges Y.", opts)

	if len(res.Pairs) != 1 || !res.Pairs[0].Pair.Matched() {
		t.Fatalf("expected one matched pair, got %+v", res.Pairs)
	}
	var sawDel, sawIns bool
	for _, s := range res.Pairs[0].Spans {
		switch s.Kind {
		case inline.Delete:
			sawDel = true
			if strings.TrimSpace(s.Text) != "X" {
				t.Errorf("unexpected deletion %q", s.Text)
			}
		case inline.Insert:
			sawIns = true
			if strings.TrimSpace(s.Text) != "Y" {
				t.Errorf("unexpected insertion %q", s.Text)
			}
		}
	}
	if !sawDel || !sawIns {
		t.Error("expected a delete and an insert span")
	}
}

func TestCompare_ZeroValueOptionsGetDefaults(t *testing.T) {
	res := Compare(oldPleading, newPleading, Options{})
	if len(res.Pairs) == 0 {
		t.Fatal("zero-value options must still produce a comparison")
	}
	if res.Degraded != 0 {
		t.Errorf("tiny inputs must not degrade, got %d", res.Degraded)
	}
}

func TestCompare_SingleWorkerSameResult(t *testing.T) {
	serial := DefaultOptions()
	serial.MaxConcurrentDiff = 1
	a := Compare(oldPleading, newPleading, serial)
	b := Compare(oldPleading, newPleading, DefaultOptions())

	if len(a.Pairs) != len(b.Pairs) {
		t.Fatalf("pair counts differ: %d vs %d", len(a.Pairs), len(b.Pairs))
	}
	for i := range a.Pairs {
		if len(a.Pairs[i].Spans) != len(b.Pairs[i].Spans) {
			t.Errorf("pair %d: span counts differ under concurrency", i)
			continue
		}
		for j := range a.Pairs[i].Spans {
			if a.Pairs[i].Spans[j] != b.Pairs[i].Spans[j] {
				t.Errorf("pair %d span %d differs under concurrency", i, j)
			}
		}
	}
}
