package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"yoloprep/internal/config"
	"yoloprep/internal/dataset"
	"yoloprep/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckDirectoryReadable verifies that the directory exists and can be listed.
func CheckDirectoryReadable(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "readable")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckInputLayout verifies <input>/videos is a readable directory and
// reports how many video units it holds.
func CheckInputLayout(inputDir string) Result {
	const name = "Input directory"
	if strings.TrimSpace(inputDir) == "" {
		return Result{Name: name, Detail: "paths.input_dir not set (use --input)"}
	}
	videos := filepath.Join(inputDir, "videos")
	result := CheckDirectoryReadable(name, videos)
	if !result.Passed {
		return result
	}
	units, err := dataset.DiscoverUnits(inputDir)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	annotated := 0
	for _, unit := range units {
		if ok, err := unit.HasAnnotations(); err == nil && ok {
			annotated++
		}
	}
	result.Detail = fmt.Sprintf("%s (%d videos, %d annotated)", videos, len(units), annotated)
	return result
}

// CheckOutputDirectory verifies the output root is writable. A root that does
// not exist yet passes when its nearest existing parent is writable.
func CheckOutputDirectory(outputDir string) Result {
	return checkWritableRoot("Output directory", outputDir)
}

func checkWritableRoot(name, outputDir string) Result {
	if strings.TrimSpace(outputDir) == "" {
		return Result{Name: name, Detail: "path not set"}
	}
	if _, err := os.Stat(outputDir); err == nil {
		return CheckDirectoryAccess(name, outputDir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", outputDir, err)}
	}

	parent := filepath.Dir(outputDir)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	check := CheckDirectoryAccess(name, parent)
	if !check.Passed {
		return check
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", outputDir)}
}

// CheckSystemDeps evaluates the decoding tools named by the config.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(ctx, deps.FFmpegRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
}
