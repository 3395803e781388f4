package export

import (
	"strings"
	"time"
)

const autoTimestampFormat = "20060102_150405"

// AutoOutputPath derives the default output directory for a project:
// {project}_output_{YYYYMMDD_HHMMSS}. An empty project yields "".
func AutoOutputPath(project string, now time.Time) string {
	project = strings.TrimRight(project, "/")
	if project == "" {
		return ""
	}
	return project + "_output_" + now.Format(autoTimestampFormat)
}

// Destination tracks whether the output directory is chosen explicitly or
// derived from the project path at export time.
type Destination struct {
	explicit string
}

// Set pins the output directory. An empty path switches back to auto.
func (d *Destination) Set(path string) {
	d.explicit = strings.TrimSpace(path)
}

// Reset switches back to the auto-derived directory
func (d *Destination) Reset() {
	d.explicit = ""
}

// IsAuto reports whether the directory is derived from the project
func (d *Destination) IsAuto() bool {
	return d.explicit == ""
}

// Resolve returns the directory an export started at now would use
func (d *Destination) Resolve(project string, now time.Time) string {
	if d.explicit != "" {
		return d.explicit
	}
	return AutoOutputPath(project, now)
}

// Placeholder is the hint shown while the directory is auto-derived
func (d *Destination) Placeholder(project string, now time.Time) string {
	if !d.IsAuto() {
		return d.explicit
	}
	if project == "" {
		return "Auto: {project}_output_{ts}"
	}
	return AutoOutputPath(project, now)
}
