// Package deps reports the availability of the external tools trimmux
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency trimmux relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Defaults returns the requirements for the configured tool binaries.
func Defaults(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpeg,
			Description: "Transcodes and remuxes the selected streams",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobe,
			Description: "Enumerates streams and container metadata",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
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
		if resolved, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		} else {
			status.Available = true
			status.Command = resolved
		}
		results = append(results, status)
	}
	return results
}

// AllRequired reports whether every non-optional requirement is available.
func AllRequired(statuses []Status) bool {
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			return false
		}
	}
	return true
}
