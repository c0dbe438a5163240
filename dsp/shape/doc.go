// Package shape implements the shaping pipeline that turns a raw magnitude
// spectrum into the processed spectrum used for peak extraction.
//
// Every stage is a pure function: it reads its input slice and returns a new
// slice of the same length. The stages, in pipeline order:
//
//   - [Smooth]: edge-replicating convolution with an L1-normalized kernel
//   - [LogEmphasis]: bin i scaled by max(0, ln(2i))
//   - [BandGain]: a fractional band of bins scaled by a fixed gain
//   - [Reinforce]: bins near a previously dominant bin boosted, never reduced
//
// [Pipeline] runs them in order, applying [Reinforce] once per prior frame.
package shape
