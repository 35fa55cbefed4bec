/*
Copyright © 2026 Sysnap Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/sysnap-io/sysnap/pkg/archive"
	snaperrors "github.com/sysnap-io/sysnap/pkg/errors"
	"github.com/sysnap-io/sysnap/pkg/manifest"
	"github.com/sysnap-io/sysnap/pkg/report"
	"github.com/sysnap-io/sysnap/pkg/serializer"
)

// stdin is swapped in tests to script the interactive prompts.
var stdin io.Reader = os.Stdin

// snapshotCmdOptions holds parsed options for the snapshot command.
type snapshotCmdOptions struct {
	auto          bool
	keep          int
	yes           bool
	output        string
	baseDir       string
	manifestPath  string
	timeout       time.Duration
	walkThrottle  int
	configDir     string
	k8s           bool
	kubeconfig    string
	format        serializer.Format
	summaryOutput string
}

// parseSnapshotCmdOptions parses and validates command options.
func parseSnapshotCmdOptions(cmd *cli.Command) (*snapshotCmdOptions, error) {
	opts := &snapshotCmdOptions{
		auto:          cmd.Bool("auto"),
		keep:          int(cmd.Int("keep")),
		yes:           cmd.Bool("yes"),
		output:        cmd.String("output"),
		baseDir:       archive.DefaultDir(),
		manifestPath:  cmd.String("manifest"),
		timeout:       cmd.Duration("timeout"),
		walkThrottle:  int(cmd.Int("walk-throttle")),
		configDir:     cmd.String("config-dir"),
		k8s:           cmd.Bool("k8s"),
		kubeconfig:    cmd.String("kubeconfig"),
		format:        serializer.Format(cmd.String("format")),
		summaryOutput: cmd.String("summary-output"),
	}

	if opts.format.IsUnknown() {
		return nil, fmt.Errorf("unknown output format: %q", opts.format)
	}
	if opts.keep < 0 {
		return nil, fmt.Errorf("--keep must be zero or positive, got %d", opts.keep)
	}
	if opts.walkThrottle < 0 {
		return nil, fmt.Errorf("--walk-throttle must be zero or positive, got %d", opts.walkThrottle)
	}
	if opts.auto && opts.output != "" {
		return nil, fmt.Errorf("--auto and --output are mutually exclusive")
	}

	return opts, nil
}

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Assemble a diagnostic report of this machine",
		Description: `Assembles a plain-text diagnostic report of this machine: OS and hardware
identity, storage, network, desktop session, services, packages, recent
log errors, and the user configuration directory, ending with a summary
of everything that could not be collected.

The report is built for humans first: stable section order, a numbered
table of contents, and a privacy notice listing what is and is not
included. Collector failures never abort a run; they degrade into report
entries so a half-broken machine still produces a useful artifact.

# Modes

Interactive (default) prompts for the report directory and filename and
asks before overwriting an existing file. Declining the overwrite aborts
before anything is written to the target.

Automatic (--auto) writes to the fixed location under $XDG_DATA_HOME/sysnap.
A previous report is archived with a UTC timestamp suffix first, and
archives beyond the retention count are pruned oldest-first.

An explicit --output path skips the prompts entirely.

# Examples

Interactive run:
  sysnap snapshot

Unattended run for a cron job or shell alias:
  sysnap snapshot --auto --keep 10

Explicit output with a JSON summary for tooling:
  sysnap snapshot --output /tmp/report.txt --format json --summary-output /tmp/summary.json

Extend the report with custom sections:
  sysnap snapshot --manifest ./extras.yaml

Include the Kubernetes cluster section:
  sysnap snapshot --k8s --kubeconfig ~/.kube/config`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "auto",
				Aliases: []string{"a"},
				Usage:   "Write to the fixed report location, archiving the previous report first",
				Sources: cli.EnvVars("SYSNAP_AUTO"),
			},
			&cli.IntFlag{
				Name:    "keep",
				Value:   archive.DefaultKeep,
				Usage:   "Archives to retain in automatic mode (older ones are pruned)",
				Sources: cli.EnvVars("SYSNAP_KEEP"),
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Assume the default answer for every prompt (scripting escape hatch)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report file path (skips the interactive prompts)",
				Sources: cli.EnvVars("SYSNAP_OUTPUT"),
			},
			&cli.StringFlag{
				Name:    "manifest",
				Aliases: []string{"m"},
				Usage:   "Path or URL of a YAML section manifest; its sections append after the built-ins",
				Sources: cli.EnvVars("SYSNAP_MANIFEST"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   report.DefaultCollectorTimeout,
				Usage:   "Per-collector time bound (a slow source fails alone, the run continues)",
				Sources: cli.EnvVars("SYSNAP_TIMEOUT"),
			},
			&cli.IntFlag{
				Name:    "walk-throttle",
				Usage:   "Configuration walk pacing in files per second (0 disables pacing)",
				Sources: cli.EnvVars("SYSNAP_WALK_THROTTLE"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "Override the configuration walk root (default: XDG config home)",
				Sources: cli.EnvVars("SYSNAP_CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "k8s",
				Usage:   "Include the Kubernetes cluster section",
				Sources: cli.EnvVars("SYSNAP_K8S"),
			},
			&cli.StringFlag{
				Name:    "summary-output",
				Usage:   "Run summary file path (default: stdout)",
				Sources: cli.EnvVars("SYSNAP_SUMMARY_OUTPUT"),
			},
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseSnapshotCmdOptions(cmd)
			if err != nil {
				return err
			}

			target, err := resolveTarget(ctx, opts)
			if err != nil {
				return err
			}

			reg, err := buildRegistry(ctx, opts)
			if err != nil {
				return err
			}

			slog.Info("assembling report",
				slog.String("target", target),
				slog.Int("sections", reg.Len()),
				slog.Int("collectors", reg.CollectorCount()))

			a := report.NewAssembler(reg,
				report.WithCollectorTimeout(opts.timeout),
				report.WithTool(toolID()))

			sum, err := a.RunFile(ctx, target)
			if err != nil {
				return err
			}

			fmt.Fprint(os.Stderr, epilogue(sum))

			ser := serializer.NewFileWriterOrStdout(opts.format, opts.summaryOutput)
			defer func() {
				if closer, ok := ser.(interface{ Close() error }); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			return ser.Serialize(ctx, sum)
		},
	}
}

// resolveTarget determines the report path. Automatic mode rotates the
// fixed location; an explicit --output skips the prompts; otherwise the
// user is asked for a directory and filename and must confirm before an
// existing file is overwritten. Declining leaves the target untouched.
func resolveTarget(ctx context.Context, opts *snapshotCmdOptions) (string, error) {
	if opts.auto {
		res, err := archive.NewRotator(opts.baseDir, opts.keep).Rotate(ctx)
		if err != nil {
			return "", err
		}
		if res.Archived != "" {
			slog.Info("archived previous report",
				slog.String("archive", res.Archived),
				slog.Int("pruned", len(res.Pruned)))
		}
		return filepath.Join(opts.baseDir, archive.ReportName), nil
	}

	if opts.output != "" {
		dir := filepath.Dir(opts.output)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
				fmt.Sprintf("creating report directory %s", dir), err)
		}
		return opts.output, nil
	}

	dir, fileName := opts.baseDir, archive.ReportName
	if !opts.yes {
		var err error
		if dir, err = promptString("Report directory", opts.baseDir); err != nil {
			return "", err
		}
		if fileName, err = promptString("Report filename", archive.ReportName); err != nil {
			return "", err
		}
	}
	dir = expandHome(dir)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
			fmt.Sprintf("creating report directory %s", dir), err)
	}

	target := filepath.Join(dir, fileName)
	if _, err := os.Stat(target); err == nil && !opts.yes {
		ok, perr := promptYesNo(fmt.Sprintf("%s exists, overwrite?", target))
		if perr != nil {
			return "", perr
		}
		if !ok {
			return "", fmt.Errorf("refusing to overwrite %s", target)
		}
	}
	return target, nil
}

// buildRegistry assembles the effective section registry: the built-in
// sections plus any manifest sections appended in declaration order.
func buildRegistry(ctx context.Context, opts *snapshotCmdOptions) (*report.Registry, error) {
	reg := report.DefaultRegistry(report.BuiltinConfig{
		ConfigRoot:   opts.configDir,
		WalkThrottle: opts.walkThrottle,
		Kubernetes:   opts.k8s,
		Kubeconfig:   opts.kubeconfig,
	})

	if opts.manifestPath == "" {
		return reg, nil
	}

	man, err := manifest.Load(ctx, opts.manifestPath)
	if err != nil {
		return nil, err
	}
	for _, s := range man.Build(manifest.BuildOptions{WalkThrottle: opts.walkThrottle}) {
		reg.Add(s)
	}
	slog.Debug("appended manifest sections",
		slog.String("source", opts.manifestPath),
		slog.Int("sections", len(man.Sections)))
	return reg, nil
}

// epilogue renders the human outcome lines printed after every run. The
// counts print even when zero: a partial capture must never look complete.
func epilogue(sum *report.RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nReport written to %s (%s)\n", sum.Path, humanize.IBytes(uint64(sum.Bytes)))
	fmt.Fprintf(&b, "Collector failures: %d\n", sum.Failures)
	fmt.Fprintf(&b, "Permission-denied items: %d", sum.PermissionDenied)
	if sum.PermissionDenied > 0 {
		b.WriteString(" (see the Collection Summary section; re-run with elevated privileges to include them)")
	}
	b.WriteString("\n")
	return b.String()
}

// promptString asks for a value and returns the default when the user
// just presses enter.
func promptString(label, def string) (string, error) {
	fmt.Printf("%s [%s]: ", label, def)
	var response string
	if _, err := fmt.Fscanln(stdin, &response); err != nil && err.Error() != "unexpected newline" {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	response = strings.TrimSpace(response)
	if response == "" {
		return def, nil
	}
	return response, nil
}

// promptYesNo asks a yes/no question defaulting to no.
func promptYesNo(label string) (bool, error) {
	fmt.Printf("%s [y/N]: ", label)
	var response string
	if _, err := fmt.Fscanln(stdin, &response); err != nil && err.Error() != "unexpected newline" {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

// expandHome resolves a leading ~/ against the user home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
