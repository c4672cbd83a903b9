package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/diogo/askbox/internal/tui"
)

type fakeClient struct {
	mu      sync.Mutex
	key     string
	keyErr  error
	reply   string
	err     error
	prompts []string
	lastKey string
}

func (f *fakeClient) FetchCredential(ctx context.Context) (string, error) {
	return f.key, f.keyErr
}

func (f *fakeClient) Complete(ctx context.Context, apiKey, requestID, userText string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, userText)
	f.lastKey = apiKey
	return f.reply, f.err
}

type fakeTUI struct {
	called  bool
	palette string
	err     error
	session tui.ObservableSession
}

func (f *fakeTUI) RunChat(ctx context.Context, session tui.ObservableSession, opts tui.Options) error {
	f.called = true
	f.palette = opts.Palette
	f.session = session
	return f.err
}

// syncBuffer is written by the spinner goroutine and the logger at once
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testEnv struct {
	deps       *Dependencies
	stdout     *bytes.Buffer
	stderr     *syncBuffer
	copied     []string
	configPath string
}

func newTestEnv(t *testing.T, client ChatClient) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GLAMOUR_STYLE", "")

	env := &testEnv{
		stdout:     &bytes.Buffer{},
		stderr:     &syncBuffer{},
		configPath: filepath.Join(home, "config.json"),
	}
	env.deps = &Dependencies{
		Client: client,
		TUI:    &fakeTUI{},
		Clipboard: func(s string) error {
			env.copied = append(env.copied, s)
			return nil
		},
		IsTTY:  func() bool { return false },
		Stdout: env.stdout,
		Stderr: env.stderr,
	}

	configFlag = ""
	logLevelFlag = ""
	t.Cleanup(func() {
		configFlag = ""
		logLevelFlag = ""
	})
	return env
}

// run executes the root command with args and stdin
func (e *testEnv) run(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	} else {
		// A character device reads as an interactive terminal
		tty, err := os.Open(os.DevNull)
		if err != nil {
			t.Fatalf("open %s: %v", os.DevNull, err)
		}
		defer tty.Close()
		cmd.SetIn(tty)
	}
	return cmd.Execute()
}

func findCommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}

var errBoom = errors.New("boom")
