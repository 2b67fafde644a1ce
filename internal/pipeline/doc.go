// Package pipeline drives a prepare run: it locks the output root, walks the
// discovered video units in order and, for each one, samples frames, aligns
// the annotation CSV to the sampled frames and writes labels plus manifest.
//
// Each unit ends as processed, skipped or failed. Failures tagged
// ErrExternalTool only fail their unit; ErrConfiguration, ErrValidation,
// ErrIO and cancellation abort the run. Runner.Run always returns the
// Summary gathered so far, even when it also returns an error.
package pipeline
