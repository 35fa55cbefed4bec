package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// maxCommandOutput caps captured command output so a runaway command
// cannot flood the report. Truncation is always marked, never silent.
const maxCommandOutput = 2 << 20 // 2 MiB

// passEnv lists environment variables forwarded to child commands so
// session-aware tools (loginctl, hyprctl, nmcli) can reach their daemons.
// Everything else is withheld.
var passEnv = []string{
	"XDG_RUNTIME_DIR",
	"DBUS_SESSION_BUS_ADDRESS",
	"WAYLAND_DISPLAY",
	"DISPLAY",
}

// Command describes one external command capture as an argv vector, never
// a shell string, so arguments cannot be re-tokenized or interpolated.
type Command struct {
	// Description optionally overrides the rendered origin; when empty
	// the origin is the argv joined with spaces.
	Description string
	Path        string
	Args        []string
}

// CommandCollector runs one external command and captures its combined
// stdout and stderr as a single interleaved stream.
type CommandCollector struct {
	cmd     Command
	timeout time.Duration
}

// CommandOption configures a CommandCollector.
type CommandOption func(*CommandCollector)

// WithCommandTimeout bounds a single command run independently of the
// caller's context. Zero means no additional bound.
func WithCommandTimeout(d time.Duration) CommandOption {
	return func(c *CommandCollector) {
		c.timeout = d
	}
}

// NewCommandCollector creates a collector for the given command record.
func NewCommandCollector(cmd Command, opts ...CommandOption) *CommandCollector {
	c := &CommandCollector{cmd: cmd}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origin returns the rendered label for this command.
func (c *CommandCollector) Origin() string {
	if c.cmd.Description != "" {
		return c.cmd.Description
	}
	if len(c.cmd.Args) == 0 {
		return c.cmd.Path
	}
	return c.cmd.Path + " " + strings.Join(c.cmd.Args, " ")
}

// Kind returns KindCommand.
func (c *CommandCollector) Kind() Kind {
	return KindCommand
}

// Collect runs the command and captures its output. A non-zero exit,
// missing binary, or expired context yields a Failed result; the run as a
// whole is never aborted by a broken command.
func (c *CommandCollector) Collect(ctx context.Context) Result {
	origin := c.Origin()

	if err := ctx.Err(); err != nil {
		return FailResult(origin, contextDetail(ctx, 0))
	}

	path, err := exec.LookPath(c.cmd.Path)
	if err != nil {
		return FailResult(origin, fmt.Sprintf("%s not found in PATH", c.cmd.Path))
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, c.cmd.Args...)
	cmd.Env = boundedEnv()

	// One buffer for both streams keeps stderr interleaved where it
	// happened instead of appended at the end.
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	out := sanitizeOutput(buf.Bytes())

	if runErr != nil {
		if ctx.Err() != nil {
			return FailResult(origin, contextDetail(ctx, elapsed))
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return FailResult(origin, exitDetail(exitErr, out))
		}
		return FailResult(origin, runErr.Error())
	}

	slog.Debug("command captured",
		slog.String("command", origin),
		slog.Int("bytes", len(out)),
		slog.Duration("took", elapsed),
	)
	return TextResult(origin, out)
}

// boundedEnv builds the minimal child environment: PATH and HOME from the
// parent, a C locale and dumb terminal for stable output, plus the
// session passthrough set.
func boundedEnv() []string {
	env := []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + os.Getenv("HOME"),
		"LANG=C",
		"LC_ALL=C",
		"TERM=dumb",
	}
	for _, key := range passEnv {
		if v, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+v)
		}
	}
	return env
}

// sanitizeOutput strips ANSI escape sequences, trims trailing newlines,
// and truncates oversized output at a rune boundary with an explicit
// marker line.
func sanitizeOutput(raw []byte) string {
	out := strings.TrimRight(ansi.Strip(string(raw)), "\n")
	if len(out) <= maxCommandOutput {
		return out
	}
	cut := maxCommandOutput
	for cut > 0 && !utf8.RuneStart(out[cut]) {
		cut--
	}
	return out[:cut] + "\n[output truncated at 2 MiB]"
}

// exitDetail summarizes a non-zero exit with the last output line, which
// for most tools is the error message.
func exitDetail(exitErr *exec.ExitError, out string) string {
	detail := fmt.Sprintf("exit status %d", exitErr.ExitCode())
	if line := lastLine(out); line != "" {
		detail += ": " + line
	}
	return detail
}

// contextDetail names the way the context ended.
func contextDetail(ctx context.Context, elapsed time.Duration) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		if elapsed > 0 {
			return fmt.Sprintf("timed out after %s", elapsed.Round(time.Millisecond))
		}
		return "timed out"
	}
	return "canceled"
}

func lastLine(s string) string {
	s = strings.TrimRight(s, "\n")
	if idx := strings.LastIndexByte(s, '\n'); idx != -1 {
		s = s[idx+1:]
	}
	return strings.TrimSpace(s)
}
