package preflight

import (
	"context"

	"yoloprep/internal/config"
	"yoloprep/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config: the input
// layout, the output root and the decoding tools.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckInputLayout(cfg.Paths.InputDir),
		CheckOutputDirectory(cfg.Paths.OutputDir),
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, checkWritableRoot("Log directory", cfg.Paths.LogDir))
	}
	for _, status := range CheckSystemDeps(ctx, cfg) {
		results = append(results, fromStatus(status))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}

func fromStatus(status deps.Status) Result {
	result := Result{Name: status.Name, Passed: status.Available}
	switch {
	case !status.Available:
		result.Detail = status.Detail
	case status.Version != "":
		result.Detail = status.Path + " (" + status.Version + ")"
	case status.Detail != "":
		result.Detail = status.Path + " (" + status.Detail + ")"
	default:
		result.Detail = status.Path
	}
	if !status.Available && status.Optional {
		result.Passed = true
	}
	return result
}
