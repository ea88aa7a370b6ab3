package signature

import (
	"sort"

	"github.com/grailbio/fqid/technology"
)

// Status classifies a match outcome. "Technology unknown" is a valid
// result, not an error, so NoMatch and Ambiguous are statuses rather
// than error values.
type Status int

const (
	// NoMatch means no registered technology fits the signature.
	NoMatch Status = iota
	// Unique means exactly one technology fits.
	Unique
	// Ambiguous means more than one technology fits; the caller must
	// decide between the ranked candidates.
	Ambiguous
)

func (s Status) String() string {
	switch s {
	case NoMatch:
		return "no match"
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	}
	return "invalid"
}

// MatchResult is the outcome of comparing a signature against the
// technology registry.
type MatchResult struct {
	Status Status
	// Candidates lists the names of all matching technologies, best
	// first. Empty for NoMatch, a single name for Unique.
	Candidates []string
}

// Match compares sig against specs and returns the ranked result. It is
// a pure function: identical inputs always yield identical results.
//
// File count is a hard constraint: a spec expecting a different number
// of files is rejected outright. Among specs with the right file count,
// a spec matches only if every per-file length falls within the range
// of the role at that position. When several specs match, they are
// ranked by ascending total range width (a tighter spec is more
// specific), with exact ties kept in declaration order.
func Match(sig Signature, specs []technology.Spec) MatchResult {
	type candidate struct {
		name  string
		width int
		index int
	}
	var matched []candidate
	for i, spec := range specs {
		if spec.NumFiles() != sig.FileCount {
			continue
		}
		full := true
		for pos, length := range sig.Lengths {
			if !spec.LengthRangeAt(pos).Contains(length) {
				full = false
				break
			}
		}
		if full {
			matched = append(matched, candidate{spec.Name, spec.TotalWidth(), i})
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].width != matched[j].width {
			return matched[i].width < matched[j].width
		}
		return matched[i].index < matched[j].index
	})

	result := MatchResult{}
	switch len(matched) {
	case 0:
		result.Status = NoMatch
	case 1:
		result.Status = Unique
	default:
		result.Status = Ambiguous
	}
	for _, c := range matched {
		result.Candidates = append(result.Candidates, c.name)
	}
	return result
}
