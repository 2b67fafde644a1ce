// Package main hosts the yoloprep CLI entrypoint and command graph.
//
// The Cobra-based command tree turns an annotated video collection into a
// YOLO training dataset (prepare), checks a produced dataset for consistency
// (verify), reports whether the input, output and decoding tools are usable
// (check), and scaffolds configuration files (config). It centralizes
// configuration resolution, flag overrides and structured logging setup so
// subcommands only wire internal packages together.
//
// Keep this package lean: behavior belongs in internal/pipeline and
// internal/dataset, and commands here only render their results.
package main
