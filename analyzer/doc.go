// Package analyzer turns a stream of 16-bit PCM sample buffers into a
// sequence of immutable [Frame] values describing the frequency content of
// each time slice.
//
// Per buffer the [Analyzer] runs, to completion:
//
//	raw samples -> spectrum.Transformer -> shape.Pipeline (reads History)
//	  -> peak.Extract -> frequency.Summarize/Diff (reads History) -> Frame
//
// The frame is appended to the [History] window, published to the [Latest]
// handle and handed to every [Consumer]. History is owned by the goroutine
// calling [Analyzer.Process] or [Analyzer.Run]; other goroutines read frames
// through [Latest] and use [Frame.Prior] for history context.
package analyzer
