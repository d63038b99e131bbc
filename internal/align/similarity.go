package align

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/dgallion1/redline/internal/chunker"
)

// Similarity scores how alike two chunk bodies are, in [0,1]. It is the
// classic difflib ratio — twice the matched token count over the total token
// count — computed over word tokens rather than characters so that a
// rewritten paragraph with its sentences intact still scores high.
func Similarity(a, b string) float64 {
	ta := chunker.Words(a)
	tb := chunker.Words(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	// Autojunk stays off: it discards tokens popular on the new side once a
	// sequence passes 200 elements, which is tuned for line sequences. Word
	// tokens like "the" clear that bar in any long paragraph and the ratio
	// would undercount them.
	return difflib.NewMatcherWithJunk(ta, tb, false, nil).Ratio()
}
