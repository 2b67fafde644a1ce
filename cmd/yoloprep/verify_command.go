package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"yoloprep/internal/dataset"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "verify [video...]",
		Short: "Check a produced dataset for missing or unlisted label files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Paths.OutputDir = outputDir
				if err := cfg.NormalizePaths(); err != nil {
					return err
				}
			}
			root := cfg.Paths.OutputDir

			videos := args
			if len(videos) == 0 {
				videos, err = dataset.OutputUnits(root)
				if err != nil {
					return err
				}
			}
			if len(videos) == 0 {
				return fmt.Errorf("no dataset units found under %s", root)
			}

			reports := make([]dataset.VerifyReport, 0, len(videos))
			problems := 0
			for _, video := range videos {
				report, err := dataset.VerifyUnit(dataset.NewLayout(root, video))
				if err != nil {
					return fmt.Errorf("verify %s: %w", video, err)
				}
				problems += len(report.Problems)
				reports = append(reports, report)
			}

			if jsonOutput {
				if err := writeJSON(cmd, reports); err != nil {
					return err
				}
			} else {
				printVerifyReports(cmd, reports)
			}
			if problems > 0 {
				return fmt.Errorf("verification found %d problem(s)", problems)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Dataset output root to verify")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print reports as JSON")
	return cmd
}

func printVerifyReports(cmd *cobra.Command, reports []dataset.VerifyReport) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		kind, label := statusOK, "OK"
		if !report.OK() {
			kind, label = statusError, strconv.Itoa(len(report.Problems))+" problem(s)"
		}
		rows = append(rows, []string{
			report.Video,
			strconv.Itoa(report.ManifestEntries),
			strconv.Itoa(report.LabelFiles),
			strconv.Itoa(report.Images),
			paint(label, kind, colorize),
		})
	}
	headers := []string{"Video", "Manifest", "Labels", "Images", "Status"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns, nil))

	for _, report := range reports {
		if report.OK() {
			continue
		}
		fmt.Fprintln(out)
		for _, line := range renderSectionHeader(report.Video, colorize) {
			fmt.Fprintln(out, line)
		}
		for _, problem := range report.Problems {
			fmt.Fprintf(out, "  %s: %s\n", problem.Path, problem.Detail)
		}
	}
}
