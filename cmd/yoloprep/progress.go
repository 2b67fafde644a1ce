package main

import (
	"fmt"
	"io"
	"strconv"

	"yoloprep/internal/pipeline"
)

// progressObserver prints one line before and after each unit.
type progressObserver struct {
	out      io.Writer
	colorize bool
}

func newProgressObserver(out io.Writer, colorize bool) *progressObserver {
	return &progressObserver{out: out, colorize: colorize}
}

func (p *progressObserver) UnitStarted(index, total int, video string) {
	fmt.Fprintf(p.out, "[%d/%d] %s\n", index, total, video)
}

func (p *progressObserver) UnitFinished(_, _ int, result pipeline.UnitResult) {
	fmt.Fprintln(p.out, renderStatusLine(result.Video, unitStatusKind(result.Status), unitDetail(result), p.colorize))
}

func unitDetail(result pipeline.UnitResult) string {
	switch result.Status {
	case pipeline.StatusProcessed:
		detail := strconv.Itoa(result.ImagesWritten) + " images, " + strconv.Itoa(result.LabelFiles) + " label files"
		if result.DecodeTruncated {
			detail += " (decoding stopped early)"
		}
		return detail
	case pipeline.StatusSkipped:
		return outcomeLabel(result.Reason)
	case pipeline.StatusFailed:
		return outcomeLabel(result.Stage) + ": " + result.ErrorMsg
	default:
		return ""
	}
}
