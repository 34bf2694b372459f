package cli

import (
	"context"
	"os"

	"github.com/matzehuels/gridsep/pkg/buildinfo"
)

// SetVersion sets the version information displayed by --version and the
// server's health endpoint. It is typically called by the main package with
// values injected via ldflags at build time.
func SetVersion(version, commit, date string) {
	if version != "" {
		buildinfo.Version = version
	}
	if commit != "" {
		buildinfo.Commit = commit
	}
	if date != "" {
		buildinfo.Date = date
	}
}

// Execute runs the gridsep CLI with args taken from os.Args and returns an
// error if any command fails. Logging goes to stderr at info level, or debug
// with --verbose.
//
// Example:
//
//	func main() {
//	    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	    defer cancel()
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
