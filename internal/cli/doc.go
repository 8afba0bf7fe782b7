// Package cli parses command-line arguments, validates them, and
// translates them into an app.Config, handling process-level concerns
// like usage text and exit codes the same way the teacher's internal/cli
// does for its own flag set.
package cli
