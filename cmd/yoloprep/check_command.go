package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yoloprep/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var inputDir string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check input layout, output directory and decoding tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("input") {
				cfg.Paths.InputDir = inputDir
			}
			if cmd.Flags().Changed("output") {
				cfg.Paths.OutputDir = outputDir
			}
			if err := cfg.NormalizePaths(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(cmd.Context(), cfg)

			config := "defaults"
			if ctx.configExists {
				config = ctx.configPath
			}
			for _, line := range renderSectionHeader("yoloprep check", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, config, colorize))
			fmt.Fprintln(out, renderStatusLine("Stride", statusInfo, fmt.Sprintf("every %d frame(s)", cfg.Stride()), colorize))
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				names := make([]string, 0, len(failed))
				for _, result := range failed {
					names = append(names, result.Name)
				}
				return fmt.Errorf("checks failed: %s", strings.Join(names, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Input root containing videos/<name>/")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Dataset output root")
	return cmd
}
