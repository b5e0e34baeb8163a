//go:build smoke

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
)

// TestSmoke_Binary exercises the built binary end to end: the TUI under a
// pseudo-TTY, the plain flow over a pipe and the check exit codes.
func TestSmoke_Binary(t *testing.T) {
	binary := buildBinary(t)

	t.Run("tui registers an account", func(t *testing.T) {
		ptmx, cmd := startPTY(t, binary, t.TempDir())
		readPTYUntil(t, ptmx, "Create Account", 8*time.Second)

		keys := []string{
			"Ada", "\t", "Lovelace", "\t", "ada@example.com", "\t", "1234567890", "\t",
			"\x1b[C", "\t", // country: India
			"1815-12-10", "\t", "analytical", "\t", "analytical", "\t",
			" ", "\t", // terms, then the button
			"\r",
		}
		for _, k := range keys {
			ptmx.Write([]byte(k))
			time.Sleep(20 * time.Millisecond)
		}

		output := readPTYUntil(t, ptmx, "Account Created Successfully", 5*time.Second)
		if !strings.Contains(stripANSI(output), "Account Created Successfully") {
			t.Fatalf("expected acknowledgment, got:\n%s", stripANSI(output))
		}

		ptmx.Write([]byte("\x03"))
		output = readPTYUntil(t, ptmx, "Registered 1 account", 5*time.Second)
		if !strings.Contains(stripANSI(output), "Registered 1 account") {
			t.Errorf("expected summary after quit, got:\n%s", stripANSI(output))
		}
		waitForExit(t, cmd, 5*time.Second)
	})

	t.Run("piped stdin uses the plain flow", func(t *testing.T) {
		cmd := exec.Command(binary)
		cmd.Dir = t.TempDir()
		cmd.Stdin = strings.NewReader(strings.Join([]string{
			"Ada", "Lovelace", "ada@example.com", "1234567890", "UK",
			"1815-12-10", "analytical", "analytical", "y", "n",
		}, "\n") + "\n")
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("signup failed: %v\n%s", err, out)
		}
		if !strings.Contains(string(out), "A confirmation would be sent to ada@example.com.") {
			t.Errorf("expected rendered receipt, got:\n%s", out)
		}
	})

	t.Run("check exit codes", func(t *testing.T) {
		dir := t.TempDir()
		invalid := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(invalid, []byte("firstName: Ada\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		tests := []struct {
			args []string
			want int
		}{
			{[]string{"check", invalid}, exitInvalid},
			{[]string{"check", filepath.Join(dir, "missing.yaml")}, exitSetup},
			{[]string{"fields"}, exitSuccess},
		}
		for _, tt := range tests {
			cmd := exec.Command(binary, tt.args...)
			cmd.Dir = dir
			err := cmd.Run()

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("%v: %v", tt.args, err)
			}
			if code != tt.want {
				t.Errorf("signup %v exit code = %d, want %d", tt.args, code, tt.want)
			}
		}
	})
}

// buildBinary compiles the signup command into a temp directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "signup")
	cmd := exec.Command("go", "build",
		"-ldflags", "-X main.version=smoke-test -X main.commit=abc1234 -X main.date=2026-01-01",
		"-o", binary, "./cmd/signup")
	cmd.Dir = findProjectRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("go build failed: %v\n%s", err, out)
	}
	return binary
}

// startPTY launches binary with a pseudo-TTY. The PTY is closed and the
// process killed when the test finishes.
func startPTY(t *testing.T, binary, dir string) (*os.File, *exec.Cmd) {
	t.Helper()
	cmd := exec.Command(binary)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 60, Cols: 100})
	if err != nil {
		t.Fatalf("failed to start with PTY: %v", err)
	}
	t.Cleanup(func() {
		ptmx.Close()
		if cmd.Process != nil {
			cmd.Process.Kill()
			cmd.Wait()
		}
	})
	return ptmx, cmd
}

// readPTYUntil reads from the PTY until target appears or timeout.
func readPTYUntil(t *testing.T, ptmx *os.File, target string, timeout time.Duration) string {
	t.Helper()
	var buf bytes.Buffer
	deadline := time.After(timeout)
	tmp := make([]byte, 4096)

	for {
		ptmx.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		n, err := ptmx.Read(tmp)
		if n > 0 {
			buf.Write(tmp[:n])
			if strings.Contains(stripANSI(buf.String()), target) {
				return buf.String()
			}
		}
		select {
		case <-deadline:
			t.Logf("timeout waiting for %q, got so far:\n%s", target, stripANSI(buf.String()))
			return buf.String()
		default:
		}
		if err != nil && !os.IsTimeout(err) && err != io.EOF {
			return buf.String()
		}
	}
}

func waitForExit(t *testing.T, cmd *exec.Cmd, timeout time.Duration) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Logf("signup exited with: %v", err)
		}
	case <-time.After(timeout):
		cmd.Process.Kill()
		t.Errorf("signup did not exit within %s, killed", timeout)
	}
}

func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

var ansiPattern = regexp.MustCompile(`\x1b(\[[0-9;?]*[ -/]*[@-~]|\][^\x07\x1b]*(\x07|\x1b\\)|[@-Z\\-_])`)

// stripANSI removes CSI, OSC and two-byte escape sequences.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
