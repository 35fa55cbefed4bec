// Package hostinfo resolves the identity facts a report preamble shows:
// hostname, user, kernel, distribution, architecture, and uptime.
package hostinfo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sysnap-io/sysnap/pkg/textfile"
	"github.com/sysnap-io/sysnap/pkg/version"
)

const unknown = "unknown"

// Info holds the identity facts rendered in a report preamble.
type Info struct {
	Hostname string
	User     string
	Kernel   string
	OS       string
	Arch     string
	Uptime   time.Duration
}

// sources names the files identity facts are read from.
type sources struct {
	osRelease     string
	kernelRelease string
	uptime        string
}

var defaultSources = sources{
	osRelease:     "/etc/os-release",
	kernelRelease: "/proc/sys/kernel/osrelease",
	uptime:        "/proc/uptime",
}

var (
	resolveOnce sync.Once
	resolved    Info
)

// Resolve gathers host identity once per process. A report renders the
// same identity in its preamble and trailer even when a host fact
// changes mid-run.
func Resolve(ctx context.Context) Info {
	resolveOnce.Do(func() {
		resolved = resolveFrom(ctx, defaultSources)
	})
	return resolved
}

// resolveFrom fans the independent lookups out and never fails: a fact
// that cannot be resolved reads "unknown".
func resolveFrom(ctx context.Context, src sources) Info {
	info := Info{
		Hostname: unknown,
		User:     unknown,
		Kernel:   unknown,
		OS:       unknown,
		Arch:     runtime.GOARCH,
	}
	if err := ctx.Err(); err != nil {
		return info
	}

	var g errgroup.Group

	g.Go(func() error {
		h, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("hostname: %w", err)
		}
		info.Hostname = h
		return nil
	})
	g.Go(func() error {
		u, err := currentUser()
		if err != nil {
			return fmt.Errorf("user: %w", err)
		}
		info.User = u
		return nil
	})
	g.Go(func() error {
		k, err := kernelRelease(src.kernelRelease)
		if err != nil {
			return fmt.Errorf("kernel: %w", err)
		}
		info.Kernel = k
		return nil
	})
	g.Go(func() error {
		name, err := osPrettyName(src.osRelease)
		if err != nil {
			return fmt.Errorf("os-release: %w", err)
		}
		info.OS = name
		return nil
	})
	g.Go(func() error {
		up, err := readUptime(src.uptime)
		if err != nil {
			return fmt.Errorf("uptime: %w", err)
		}
		info.Uptime = up
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Debug("partial host identity", slog.String("error", err.Error()))
	}

	return info
}

func currentUser() (string, error) {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username, nil
	}
	if env := os.Getenv("USER"); env != "" {
		return env, nil
	}
	return "", errors.New("no current user and USER is unset")
}

// kernelRelease reads the kernel release string and normalizes it
// through the version parser, keeping distribution suffixes such as
// "-arch1-1" intact. Unparseable strings pass through raw.
func kernelRelease(path string) (string, error) {
	lines, err := textfile.NewParser().GetLines(path)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", errors.New("empty kernel release file")
	}
	raw := strings.TrimSpace(lines[0])
	if v, perr := version.ParseVersion(raw); perr == nil && v.IsValid() {
		return v.FullString(), nil
	}
	return raw, nil
}

func osPrettyName(path string) (string, error) {
	fields, err := textfile.NewParser(textfile.WithVTrimChars(`"`)).GetMap(path)
	if err != nil {
		return "", err
	}
	if pretty := fields["PRETTY_NAME"]; pretty != "" {
		return pretty, nil
	}
	if name := fields["NAME"]; name != "" {
		if ver := fields["VERSION_ID"]; ver != "" {
			return name + " " + ver, nil
		}
		return name, nil
	}
	return "", errors.New("os-release has neither PRETTY_NAME nor NAME")
}

// readUptime parses the first field of /proc/uptime, seconds since boot.
func readUptime(path string) (time.Duration, error) {
	lines, err := textfile.NewParser().GetLines(path)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, errors.New("empty uptime file")
	}
	fields := strings.Fields(lines[0])
	if len(fields) == 0 {
		return 0, errors.New("malformed uptime line")
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parsing uptime seconds: %w", err)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// FormatUptime renders a duration at day, hour, and minute granularity,
// skipping zero components. Anything under a minute reads "0m".
func FormatUptime(d time.Duration) string {
	if d < time.Minute {
		return "0m"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d days", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", minutes))
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}
