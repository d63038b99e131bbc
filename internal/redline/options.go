package redline

import (
	"regexp"
	"time"

	"github.com/dgallion1/redline/internal/align"
	"github.com/dgallion1/redline/internal/chunker"
	"github.com/dgallion1/redline/internal/inline"
	"github.com/dgallion1/redline/internal/normalize"
)

// Profile selects a normalization profile.
type Profile string

const (
	// ProfileLegal is tuned for pleadings and LaTeX-ish exports with known
	// boilerplate patterns.
	ProfileLegal Profile = "legal"
	// ProfileGeneric additionally strips any line repeated above a
	// frequency threshold — for documents without known boilerplate.
	ProfileGeneric Profile = "generic"
)

// Strategy selects the inline diff granularity.
type Strategy string

const (
	StrategyToken    Strategy = "token"
	StrategySemantic Strategy = "semantic"
)

// Options is the complete, immutable configuration for one comparison.
// There is no process-wide state: every entry point receives its options
// explicitly.
type Options struct {
	Profile             Profile
	SimilarityThreshold float64        // [0,1]; minimum ratio to pair rewritten chunks
	Strategy            Strategy
	DiffTimeout         time.Duration  // per-pair budget for the semantic strategy
	DropPattern         *regexp.Regexp // caller-supplied repeating footer/caption
	Boundary            chunker.BoundaryMatcher
	MaxConcurrentDiff   int
}

// DefaultOptions returns the reference configuration: legal profile,
// semantic inline diff with a 2 s per-pair budget, 0.35 similarity
// threshold, pleading boundary markers.
func DefaultOptions() Options {
	return Options{
		Profile:             ProfileLegal,
		SimilarityThreshold: align.DefaultThreshold,
		Strategy:            StrategySemantic,
		DiffTimeout:         inline.DefaultTimeout,
		Boundary:            chunker.Pleading,
		MaxConcurrentDiff:   4,
	}
}

func (o Options) withDefaults() Options {
	if o.Profile == "" {
		o.Profile = ProfileLegal
	}
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = align.DefaultThreshold
	}
	if o.Strategy == "" {
		o.Strategy = StrategySemantic
	}
	if o.DiffTimeout <= 0 {
		o.DiffTimeout = inline.DefaultTimeout
	}
	if o.Boundary == nil {
		o.Boundary = chunker.Pleading
	}
	if o.MaxConcurrentDiff <= 0 {
		o.MaxConcurrentDiff = 4
	}
	return o
}

func (o Options) normalizeOptions() normalize.Options {
	var n normalize.Options
	if o.Profile == ProfileGeneric {
		n = normalize.GenericOptions()
	} else {
		n = normalize.DefaultOptions()
	}
	n.DropPattern = o.DropPattern
	return n
}
