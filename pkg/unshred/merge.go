package unshred

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MatchType describes how a candidate Section attaches to an existing one.
type MatchType int

const (
	// NoMatch means neither facing edge pair matches.
	NoMatch MatchType = 0
	// MatchRight means the candidate continues the existing Section on the right.
	MatchRight MatchType = 1
	// MatchLeft means the candidate continues the existing Section on the left.
	MatchLeft MatchType = -1
)

func (m MatchType) String() string {
	switch m {
	case MatchRight:
		return "right"
	case MatchLeft:
		return "left"
	default:
		return "none"
	}
}

// Merger performs greedy merge passes at a fixed strictness.
type Merger struct {
	Threshold int // minimum matching rows
	PixelDiff int // per-channel tolerance
	Workers   int // parallel comparisons when > 1
}

// Match classifies how candidate attaches to existing. A right-hand match is
// checked first and wins when both directions match.
func (m Merger) Match(existing, candidate Section) MatchType {
	if ColumnsMatch(existing.right, candidate.left, m.Threshold, m.PixelDiff) {
		return MatchRight
	}
	if ColumnsMatch(existing.left, candidate.right, m.Threshold, m.PixelDiff) {
		return MatchLeft
	}
	return NoMatch
}

// Pass runs one greedy left-to-right merge pass.
//
// The first Section seeds the result. Every following Section is attached to
// the first result entry it matches, or appended as a new entry when nothing
// matches. Each candidate attaches at most once per pass. The input slice is
// not modified.
//
// With Workers > 1 the comparisons for one candidate run concurrently and
// stop early when ctx is canceled; the error is then ctx's.
func (m Merger) Pass(ctx context.Context, sections []Section) ([]Section, error) {
	if len(sections) == 0 {
		return nil, nil
	}
	result := make([]Section, 1, len(sections))
	result[0] = sections[0]

	for _, cand := range sections[1:] {
		var (
			i  int
			mt MatchType
		)
		if m.Workers > 1 && len(result) > 1 {
			var err error
			if i, mt, err = m.firstMatchParallel(ctx, result, cand); err != nil {
				return nil, err
			}
		} else {
			i, mt = m.firstMatch(result, cand)
		}
		result = attach(result, i, mt, cand)
	}
	return result, nil
}

// attach joins cand onto result[i] according to mt, or appends it.
func attach(result []Section, i int, mt MatchType, cand Section) []Section {
	switch mt {
	case MatchRight:
		result[i] = result[i].Join(cand)
	case MatchLeft:
		result[i] = cand.Join(result[i])
	default:
		result = append(result, cand)
	}
	return result
}

// firstMatch returns the index and match type of the first entry in result
// that cand attaches to, or (-1, NoMatch).
func (m Merger) firstMatch(result []Section, cand Section) (int, MatchType) {
	for i, s := range result {
		if mt := m.Match(s, cand); mt != NoMatch {
			return i, mt
		}
	}
	return -1, NoMatch
}

// firstMatchParallel is firstMatch with the comparisons spread over at most
// Workers goroutines. Selection still follows list order.
func (m Merger) firstMatchParallel(ctx context.Context, result []Section, cand Section) (int, MatchType, error) {
	types := make([]MatchType, len(result))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.Workers)
	for i := range result {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			types[i] = m.Match(result[i], cand)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return -1, NoMatch, err
	}

	for i, mt := range types {
		if mt != NoMatch {
			return i, mt, nil
		}
	}
	return -1, NoMatch, nil
}

// MergePass runs a single sequential merge pass; see [Merger.Pass].
func MergePass(sections []Section, threshold, pixelDiff int) []Section {
	if len(sections) == 0 {
		return nil
	}
	m := Merger{Threshold: threshold, PixelDiff: pixelDiff}
	result := make([]Section, 1, len(sections))
	result[0] = sections[0]
	for _, cand := range sections[1:] {
		i, mt := m.firstMatch(result, cand)
		result = attach(result, i, mt, cand)
	}
	return result
}
