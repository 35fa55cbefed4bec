/*
Copyright © 2026 Sysnap Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/sysnap-io/sysnap/pkg/logging"
	"github.com/sysnap-io/sysnap/pkg/serializer"
)

const (
	name           = "sysnap"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flags shared across subcommands.
var (
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage: fmt.Sprintf("Output format (supported values: %s)",
			strings.Join(serializer.SupportedFormats(), ", ")),
		Sources: cli.EnvVars("SYSNAP_FORMAT"),
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to kubeconfig for the cluster section (default: KUBECONFIG, then ~/.kube/config)",
		Sources: cli.EnvVars("SYSNAP_KUBECONFIG"),
	}
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		EnableShellCompletion: true,
		Version:               version,
		Usage:                 "Diagnostic snapshot assembler for Linux machines",
		Description: fmt.Sprintf(`sysnap - diagnostic snapshot assembler

Version: %s
Commit:  %s
Built:   %s

Collects the state a helper needs when debugging someone else's machine:
OS identity, hardware, storage, network, services, recent log errors, and
user configuration, assembled into a single plain-text report built for
reading and diffing.`, version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("SYSNAP_LOG_LEVEL", "LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			initLogger(cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			snapshotCmd(),
			sectionsCmd(),
			publishCmd(),
		},
	}
}

// Execute runs the root command. It is called by main.main() and owns the
// process-level concerns: signal handling and the exit status.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown. Cancellation degrades
	// remaining collectors into failure entries and the artifact still
	// finalizes, so an interrupted report stays parseable.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger configures slog after flag parsing so overrides like
// --log-level take effect before any command executes.
func initLogger(logLevel string) {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)
}

// toolID renders the tool identity line for the report preamble,
// e.g. "sysnap v1.2.0 (4f9c2d1)".
func toolID() string {
	if commit == "unknown" || commit == "" {
		return fmt.Sprintf("%s %s", name, version)
	}
	short := commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s %s (%s)", name, version, short)
}
