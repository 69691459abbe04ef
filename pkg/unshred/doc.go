// Package unshred reorders the vertical shreds of a shredded image.
//
// # Overview
//
// A shredded image is an image cut into equal-width vertical strips that were
// then put back in arbitrary order. This package recovers the original order
// using only pixel similarity at strip boundaries:
//
//  1. [DetectShredWidth] finds the strip width by scanning from the left edge
//     until two neighboring columns stop looking alike.
//  2. Every strip becomes a one-shred [Section] holding its two edge columns.
//  3. [Merger.Pass] greedily glues Sections whose facing edges match.
//  4. [Reconstructor] repeats passes until one Section is left, relaxing the
//     matching tolerance whenever a pass makes no progress.
//  5. [Reassemble] copies the strips into their recovered positions.
//
// # Matching
//
// Two pixels match when every channel differs by strictly less than the
// configured pixel tolerance ([PixelsMatch]). Two columns match when at least
// Threshold rows match ([ColumnsMatch]); the threshold is a fraction of the
// image height ([Config.Threshold]).
//
// # Usage
//
//	r := unshred.NewReconstructor(unshred.DefaultConfig(), logger)
//	res, err := r.Reconstruct(img)
//	if errors.Is(err, errors.ErrCodeReconstructionIncomplete) {
//	    // res.Order is the best partial ordering
//	}
//	out, err := unshred.Reassemble(img, res.ShredWidth, res.Order)
//
// # Termination
//
// Every relaxation is counted. Once [Config.MaxMergeRounds] relaxations have
// been spent without reaching a single Section, reconstruction stops with a
// RECONSTRUCTION_INCOMPLETE error and returns the partial order.
//
// # Concurrency
//
// Reconstruction is synchronous and deterministic. With [Config.Workers] > 1
// the comparisons of one candidate against all current Sections run in
// parallel; the first match in list order still wins, so results are
// identical to the sequential path.
package unshred
