package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"yoloprep/internal/dataset"
	"yoloprep/internal/deps"
	"yoloprep/internal/logging"
	"yoloprep/internal/pipeline"
	"yoloprep/internal/preflight"
)

func newPrepareCommand(ctx *commandContext) *cobra.Command {
	var inputDir string
	var outputDir string
	var stride int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Extract sampled frames and YOLO labels from annotated videos",
		Long: `Walks <input>/videos/<name>/ and, for every video with a <name>_bb.csv,
writes every Nth frame to <output>/<name>/images, one label file per annotated
sampled frame to <output>/<name>/labels and a manifest <output>/<name>/<name>.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.Paths.InputDir = inputDir
			}
			if flags.Changed("output") {
				cfg.Paths.OutputDir = outputDir
			}
			if flags.Changed("every") {
				if stride < 0 {
					return fmt.Errorf("--every must be 0 or greater, got %d", stride)
				}
				cfg.SetStride(stride)
			}
			if err := cfg.NormalizePaths(); err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Paths.InputDir) == "" {
				return errors.New("input directory required (pass --input or set paths.input_dir)")
			}

			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			if missing := deps.MissingRequired(preflight.CheckSystemDeps(cmd.Context(), cfg)); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s (run `yoloprep check`)", strings.Join(missing, ", "))
			}

			units, err := dataset.DiscoverUnits(cfg.Paths.InputDir)
			if err != nil {
				return err
			}
			if len(units) == 0 {
				logging.WarnWithContext(logger, "no video directories found", "no_units",
					logging.String("input_dir", cfg.Paths.InputDir),
					logging.String(logging.FieldErrorHint, "expected <input>/videos/<name>/<name>.mp4"),
				)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stderr := cmd.ErrOrStderr()
			colorize := shouldColorize(cmd.OutOrStdout())
			runner, err := pipeline.NewRunner(cfg, logger,
				pipeline.WithObserver(newProgressObserver(stderr, shouldColorize(stderr))),
			)
			if err != nil {
				return err
			}

			summary, runErr := runner.Run(runCtx, units)
			if jsonOutput {
				if err := writeJSON(cmd, summary); err != nil {
					return err
				}
			} else {
				printRunSummary(cmd.OutOrStdout(), summary, colorize)
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Input root containing videos/<name>/")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Dataset output root (default \"njord-yolo\")")
	cmd.Flags().IntVarP(&stride, "every", "e", 25, "Extract every Nth frame; 0 extracts every frame")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

func printRunSummary(out io.Writer, summary *pipeline.Summary, colorize bool) {
	rows := make([][]string, 0, len(summary.Units))
	for _, unit := range summary.Units {
		rows = append(rows, []string{
			unit.Video,
			paint(outcomeLabel(string(unit.Status)), unitStatusKind(unit.Status), colorize),
			strconv.Itoa(unit.FramesDecoded),
			strconv.Itoa(unit.ImagesWritten),
			strconv.Itoa(unit.LabelFiles),
			strconv.Itoa(unit.Boxes),
			strconv.Itoa(unit.RowsDiscarded),
			unitNote(unit),
		})
	}
	images, labels, boxes := summary.Totals()
	footer := []string{"Total", "", "", strconv.Itoa(images), strconv.Itoa(labels), strconv.Itoa(boxes), "", ""}
	headers := []string{"Video", "Status", "Frames", "Images", "Labels", "Boxes", "Discarded", "Note"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns, footer))

	line := fmt.Sprintf("Run %s: %d processed, %d skipped, %d failed (stride %d) -> %s",
		summary.RunID, summary.Counts.Processed, summary.Counts.Skipped, summary.Counts.Failed, summary.Stride, summary.OutputDir)
	if summary.Aborted {
		line += "; run aborted"
	}
	fmt.Fprintln(out, line)
}

func unitNote(unit pipeline.UnitResult) string {
	switch unit.Status {
	case pipeline.StatusSkipped:
		return outcomeLabel(unit.Reason)
	case pipeline.StatusFailed:
		return outcomeLabel(unit.ErrorCode) + " at " + unit.Stage
	}
	if unit.DecodeTruncated {
		return "decoding stopped early"
	}
	return ""
}
