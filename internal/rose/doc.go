// Package rose models a filled wind rose: wind-speed-by-direction counts for
// a fixed set of height layers, stored in cumulative form so that each speed
// bin can be drawn as one filled radial region that covers every slower bin.
//
// The shapes are closed and known up front:
//
//	8 directions (N, NE, ... NW)  x  3 height layers  x  9 speed bins
//
// and are held in fixed-size arrays indexed by the [Direction], [Layer] and
// [SpeedBin] enums.
//
// # Cumulative encoding
//
// For one (direction, layer) pair the raw magnitudes r[0..8] are stored as
//
//	cum[i] = r[0] + ... + r[i]
//
// and recovered by backward differencing, r[i] = cum[i] - cum[i-1] with
// cum[-1] = 0. [Accumulate] and [Sequence.Decode] implement the two halves.
//
// # Rendering
//
// [Plan] turns a [Dataset] plus a [Visibility] store into an ordered list of
// [Region] values; [Draw] feeds them to any [Renderer] and installs a hover
// handler that answers with [Decode]. Visibility is read at call time, so a
// toggle is observed by the next Plan or hover without regenerating data.
package rose
