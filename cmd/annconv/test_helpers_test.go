package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"annconv/internal/testsupport"
)

// runCLI executes the root command with a fresh command graph and an
// isolated home directory so the default config and run-log paths never
// touch the real user environment.
func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeTestConfig creates a config file that keeps test output quiet and
// the run log inside the test's temp tree.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "config.toml")
	testsupport.WriteFile(t, path, `
[run_log]
enabled = true
dir = "`+filepath.Join(dir, "runlog")+`"

[logging]
format = "json"
level = "error"
`)
	return path
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}
