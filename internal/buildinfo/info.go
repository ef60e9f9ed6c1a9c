// Package buildinfo holds release metadata shown by `gagyebu --version` and GET /api/health.
package buildinfo

// Set with -ldflags "-X github.com/gagyebu/gagyebu/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
