package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/clangoi/judotimer/internal/constants"
)

// TestMain keeps commands that run without isolateHome away from the real
// home directory.
func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "judotimer-cli-test")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create test home:", err)
		os.Exit(1)
	}
	_ = os.Setenv(constants.HomeEnvVar, home)

	code := m.Run()

	CloseLogFile()
	_ = os.RemoveAll(home)
	os.Exit(code)
}

// isolateHome gives the test its own judotimer home and working directory
// and returns the home.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)
	t.Chdir(t.TempDir())
	t.Cleanup(CloseLogFile)
	return home
}

// executeCommand runs the root command with args and returns everything it
// wrote to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// mockTerminalCheckFunc overrides terminal detection for the test.
func mockTerminalCheckFunc(t *testing.T, isTTY bool) {
	t.Helper()
	orig := terminalCheck
	terminalCheck = func() bool { return isTTY }
	t.Cleanup(func() { terminalCheck = orig })
}

// mockFormRunner answers a confirmation form without a terminal.
type mockFormRunner struct {
	confirm *bool
	answer  bool
	err     error
	called  bool
}

func (m *mockFormRunner) Run() error {
	m.called = true
	if m.err != nil {
		return m.err
	}
	*m.confirm = m.answer
	return nil
}

// mockUnlinkForm installs a form that answers with answer, or fails with err.
func mockUnlinkForm(t *testing.T, answer bool, err error) *mockFormRunner {
	t.Helper()
	runner := &mockFormRunner{answer: answer, err: err}
	orig := createUnlinkConfirmForm
	createUnlinkConfirmForm = func(_ string, confirm *bool) formRunner {
		runner.confirm = confirm
		return runner
	}
	t.Cleanup(func() { createUnlinkConfirmForm = orig })
	return runner
}
