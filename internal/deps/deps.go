package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Requirement defines an external binary yoloprep relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArgs, when set, are passed to the binary to read its version
	// banner.
	VersionArgs []string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

const versionTimeout = 5 * time.Second

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Path = resolved
		status.Available = true
		if len(req.VersionArgs) > 0 {
			version, err := probeVersion(ctx, resolved, req.VersionArgs)
			if err != nil {
				status.Detail = fmt.Sprintf("version check failed: %v", err)
			} else {
				status.Version = version
			}
		}
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required dependencies that are unavailable.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}

func probeVersion(ctx context.Context, binary string, args []string) (string, error) {
	checkCtx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	output, err := exec.CommandContext(checkCtx, binary, args...).Output() //nolint:gosec
	if err != nil {
		return "", err
	}
	return parseVersionBanner(string(output)), nil
}
