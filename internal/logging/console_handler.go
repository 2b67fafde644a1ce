package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// prettyHandler renders one header line per record followed by indented
// key/value fields.
type prettyHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []slog.Attr
	groups    []string
	addSource bool
}

func newPrettyHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &prettyHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, record slog.Record) error {
	if record.Level < h.level.Level() {
		return nil
	}

	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	kvs := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	flattenAttrs(&kvs, h.groups, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&kvs, h.groups, attr)
		return true
	})

	head := recordHeader{level: record.Level, message: strings.TrimSpace(record.Message)}
	fields := make([]kv, 0, len(kvs))
	for _, kv := range kvs {
		if head.lift(kv) {
			continue
		}
		fields = append(fields, kv)
	}
	fields = dedupeKVsByKey(fields)

	var buf bytes.Buffer
	buf.Grow(192 + len(fields)*32)
	buf.WriteString(formatTimestamp(timestamp))
	buf.WriteByte(' ')
	head.writeTo(&buf)
	if h.addSource {
		if src := record.Source(); src != nil {
			buf.WriteString(" [")
			buf.WriteString(filepath.Base(src.File))
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(src.Line))
			buf.WriteByte(']')
		}
	}
	buf.WriteByte('\n')
	for _, field := range fields {
		buf.WriteString("    - ")
		buf.WriteString(field.key)
		buf.WriteString(": ")
		buf.WriteString(formatValue(field.value))
		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *prettyHandler) clone() *prettyHandler {
	clone := &prettyHandler{
		mu:        h.mu,
		writer:    h.writer,
		level:     h.level,
		addSource: h.addSource,
	}
	if len(h.attrs) > 0 {
		clone.attrs = make([]slog.Attr, len(h.attrs))
		copy(clone.attrs, h.attrs)
	}
	if len(h.groups) > 0 {
		clone.groups = make([]string, len(h.groups))
		copy(clone.groups, h.groups)
	}
	return clone
}

// recordHeader collects the attributes shown on the first line of a console
// record instead of as indented fields.
type recordHeader struct {
	level     slog.Level
	message   string
	component string
	runID     string
	video     string
	stage     string
}

func (r *recordHeader) lift(field kv) bool {
	switch field.key {
	case FieldComponent:
		r.component = attrString(field.value)
	case FieldRunID:
		r.runID = attrString(field.value)
	case FieldVideo:
		r.video = attrString(field.value)
	case FieldStage:
		r.stage = attrString(field.value)
	default:
		return false
	}
	return true
}

// writeTo renders "LEVEL [component run 1a2b3c4d] video (stage) – message".
// The run id is shortened; JSON output keeps it whole.
func (r *recordHeader) writeTo(buf *bytes.Buffer) {
	buf.WriteString(levelLabel(r.level))
	tag := strings.TrimSpace(r.component)
	if id := shortRunID(r.runID); id != "" {
		tag = strings.TrimSpace(tag + " run " + id)
	}
	if tag != "" {
		buf.WriteString(" [")
		buf.WriteString(tag)
		buf.WriteByte(']')
	}
	if subject := formatSubject(r.video, r.stage); subject != "" {
		buf.WriteByte(' ')
		buf.WriteString(subject)
	}
	buf.WriteString(" – ")
	if r.message == "" {
		buf.WriteString("(no message)")
		return
	}
	buf.WriteString(r.message)
}

func shortRunID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatSubject(video, stage string) string {
	video = strings.TrimSpace(video)
	stage = strings.TrimSpace(stage)
	switch {
	case video != "" && stage != "":
		return video + " (" + stage + ")"
	case video != "":
		return video
	default:
		return stage
	}
}

type kv struct {
	key   string
	value slog.Value
}

func dedupeKVsByKey(attrs []kv) []kv {
	if len(attrs) < 2 {
		return attrs
	}
	positions := make(map[string]int, len(attrs))
	deduped := make([]kv, 0, len(attrs))
	for _, attr := range attrs {
		if attr.key == "" {
			continue
		}
		if pos, ok := positions[attr.key]; ok {
			deduped[pos].value = attr.value
			continue
		}
		positions[attr.key] = len(deduped)
		deduped = append(deduped, attr)
	}
	return deduped
}

func flattenAttrs(dst *[]kv, prefix []string, attrs []slog.Attr) {
	for _, attr := range attrs {
		flattenAttr(dst, prefix, attr)
	}
}

func flattenAttr(dst *[]kv, prefix []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		next := prefix
		if attr.Key != "" {
			next = append(append([]string{}, prefix...), attr.Key)
		}
		flattenAttrs(dst, next, attr.Value.Group())
		return
	}
	key := attr.Key
	if len(prefix) > 0 {
		key = strings.Join(append(append([]string{}, prefix...), key), ".")
	}
	*dst = append(*dst, kv{key: key, value: attr.Value})
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
