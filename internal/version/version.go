// Package version holds the single source of truth for the tool version.
package version

// Version is reported by the CLI version command and the dashboard
// health endpoint.
const Version = "0.1.0"
