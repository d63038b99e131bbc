// Package align pairs the ordered chunk sequences of two document versions.
//
// Long legal texts defeat naive whole-document diffing: one early edit
// desynchronizes every later line and the output collapses into a giant
// delete followed by a giant insert. Anchors fix that. Identical anchors
// anywhere in the two documents act as synchronization points, and the
// alignment never crosses source order on either side, so the blast radius
// of any single edit is bounded by the nearest unchanged anchors.
package align

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/dgallion1/redline/internal/chunker"
)

// DefaultThreshold is the minimum similarity ratio for pairing two chunks
// whose anchors differ.
const DefaultThreshold = 0.35

// Pair is the unit of correspondence: a matched pair (both sides present),
// a deletion (old only) or an insertion (new only). At least one side is
// always non-nil.
type Pair struct {
	Old *chunker.Chunk
	New *chunker.Chunk
}

// Matched reports whether both sides are present.
func (p Pair) Matched() bool { return p.Old != nil && p.New != nil }

// Align pairs old chunks with new chunks preserving document order on both
// sides. Step one decomposes the two anchor sequences into LCS opcodes,
// treating anchors as opaque symbols equal iff byte-identical. Equal runs
// pair one-to-one; delete and insert runs emit one-sided pairs. Step two
// resolves replace runs — spans with no anchor in common — by textual
// similarity, because those are usually rewrites of the same paragraphs,
// not unrelated text.
//
// Duplicate anchors within one document are legal: the opcode decomposition
// is positional, so repeated anchors pair by order. Empty sequences are
// legal: the whole other document aligns as pure insertion or deletion.
func Align(old, new []chunker.Chunk, threshold float64) []Pair {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	// Autojunk off, as everywhere difflib is used here: a long document with
	// repeated anchors must still pair them positionally rather than have
	// the popular ones dropped from the matching.
	m := difflib.NewMatcherWithJunk(chunker.Anchors(old), chunker.Anchors(new), false, nil)

	var pairs []Pair
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for k := 0; op.I1+k < op.I2; k++ {
				pairs = append(pairs, Pair{Old: &old[op.I1+k], New: &new[op.J1+k]})
			}
		case 'd':
			for i := op.I1; i < op.I2; i++ {
				pairs = append(pairs, Pair{Old: &old[i]})
			}
		case 'i':
			for j := op.J1; j < op.J2; j++ {
				pairs = append(pairs, Pair{New: &new[j]})
			}
		case 'r':
			pairs = append(pairs, resolveReplace(old[op.I1:op.I2], new[op.J1:op.J2], threshold)...)
		}
	}
	return pairs
}

// resolveReplace pairs chunks inside a replace run by greedy similarity,
// walking old chunks in order. Legal documents are edited paragraph-by-
// paragraph in place far more often than reordered, so an order-preserving
// greedy pass captures the common case in O(run²) without a bipartite
// matching solver. Each old chunk claims the highest-scoring new chunk at
// or past the last claim; restricting candidates to later new chunks is
// what keeps the output free of order crossings.
//
// Claims are made independently of the threshold and filtered afterward.
// The claim structure is therefore the same at every threshold, so raising
// it can only remove matches, never free up earlier new chunks and create
// pairings that a lower threshold lacked.
func resolveReplace(old, new []chunker.Chunk, threshold float64) []Pair {
	claimed := make([]int, 0, len(old)) // for old[i] the claimed new index, or -1
	minJ := 0
	for i := range old {
		bestJ, bestScore := -1, 0.0
		for j := minJ; j < len(new); j++ {
			if score := Similarity(old[i].Body, new[j].Body); score > bestScore {
				bestJ, bestScore = j, score
			}
		}
		if bestJ < 0 {
			claimed = append(claimed, -1)
			continue
		}
		minJ = bestJ + 1
		if bestScore >= threshold {
			claimed = append(claimed, bestJ)
		} else {
			claimed = append(claimed, -1)
		}
	}

	// Interleave so that both the old and the new projection stay in source
	// order: before each matched pair, flush unmatched old chunks first,
	// then unclaimed new chunks with smaller indices.
	var pairs []Pair
	nextJ := 0
	isClaimed := func(j int) bool {
		for _, c := range claimed {
			if c == j {
				return true
			}
		}
		return false
	}
	flushNewBefore := func(j int) {
		for ; nextJ < j; nextJ++ {
			if !isClaimed(nextJ) {
				pairs = append(pairs, Pair{New: &new[nextJ]})
			}
		}
	}
	for i := range old {
		if claimed[i] < 0 {
			pairs = append(pairs, Pair{Old: &old[i]})
			continue
		}
		flushNewBefore(claimed[i])
		pairs = append(pairs, Pair{Old: &old[i], New: &new[claimed[i]]})
		nextJ = claimed[i] + 1
	}
	flushNewBefore(len(new))
	return pairs
}
