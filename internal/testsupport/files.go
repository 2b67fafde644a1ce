package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteUnit creates <inputDir>/videos/<name>/ with a placeholder video and,
// when csv is non-empty, the <name>_bb.csv annotation file.
func WriteUnit(t testing.TB, inputDir, name, csv string) string {
	t.Helper()

	dir := filepath.Join(inputDir, "videos", name)
	WriteFile(t, filepath.Join(dir, name+".mp4"), 64)
	if csv != "" {
		if err := os.WriteFile(filepath.Join(dir, name+"_bb.csv"), []byte(csv), 0o644); err != nil {
			t.Fatalf("write csv for %s: %v", name, err)
		}
	}
	return dir
}

// AnnotationCSV renders rows under the standard header.
func AnnotationCSV(rows ...string) string {
	out := "frame_id;class_name;x;y;width;height\n"
	for _, row := range rows {
		out += row + "\n"
	}
	return out
}
