/*
Copyright © 2026 Sysnap Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/sysnap-io/sysnap/pkg/defaults"
	"github.com/sysnap-io/sysnap/pkg/oci"
)

// defaultPublishTag tags pushes that do not specify one.
const defaultPublishTag = "latest"

// publishCmdOptions holds parsed options for the publish command.
type publishCmdOptions struct {
	source      string
	registry    string
	repository  string
	tag         string
	plainHTTP   bool
	insecureTLS bool
}

// parsePublishCmdOptions parses and validates command options. The
// registry reference is validated before any network call is made.
func parsePublishCmdOptions(cmd *cli.Command) (*publishCmdOptions, error) {
	opts := &publishCmdOptions{
		source:      cmd.String("source"),
		registry:    cmd.String("registry"),
		repository:  cmd.String("repository"),
		tag:         cmd.String("tag"),
		plainHTTP:   cmd.Bool("plain-http"),
		insecureTLS: cmd.Bool("insecure-tls"),
	}

	if opts.tag == "" {
		opts.tag = defaultPublishTag
	}
	if err := oci.ValidateRegistryReference(opts.registry, opts.repository); err != nil {
		return nil, fmt.Errorf("invalid OCI reference: %w", err)
	}

	return opts, nil
}

func publishCmd() *cli.Command {
	return &cli.Command{
		Name:                  "publish",
		EnableShellCompletion: true,
		Usage:                 "Push a report to an OCI registry",
		Description: `Packages a report directory as an OCI artifact and pushes it to a
registry with ORAS, authenticating through the Docker credential store.
This is the hand-off path: the person helping pulls the artifact from the
registry instead of receiving files over chat or mail.

A report file publishes its parent directory, so the artifact carries the
timestamped archives and the checksum manifest alongside the current
report.

# Examples

Publish the automatic-mode report directory:
  sysnap publish --source ~/.local/share/sysnap \
    --registry ghcr.io --repository acme/support --tag my-hostname

Publish one report to a local registry over HTTP:
  sysnap publish --source /tmp/report.txt \
    --registry localhost:5000 --repository dev/reports --plain-http`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "Report file or directory to publish (a file publishes its parent directory)",
			},
			&cli.StringFlag{
				Name:     "registry",
				Required: true,
				Usage:    "OCI registry host (e.g., ghcr.io, localhost:5000)",
				Sources:  cli.EnvVars("SYSNAP_REGISTRY"),
			},
			&cli.StringFlag{
				Name:     "repository",
				Required: true,
				Usage:    "OCI repository path (e.g., acme/support)",
				Sources:  cli.EnvVars("SYSNAP_REPOSITORY"),
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: fmt.Sprintf("OCI artifact tag (default: %s)", defaultPublishTag),
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry (for local development)",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the registry",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parsePublishCmdOptions(cmd)
			if err != nil {
				return err
			}

			dir, err := oci.ResolveSource(opts.source)
			if err != nil {
				return err
			}

			slog.Info("publishing report",
				slog.String("source", dir),
				slog.String("registry", opts.registry),
				slog.String("repository", opts.repository),
				slog.String("tag", opts.tag))

			pctx, cancel := context.WithTimeout(ctx, defaults.PublishTimeout)
			defer cancel()

			res, err := oci.Push(pctx, oci.PushOptions{
				SourceDir:   dir,
				Registry:    opts.registry,
				Repository:  opts.repository,
				Tag:         opts.tag,
				PlainHTTP:   opts.plainHTTP,
				InsecureTLS: opts.insecureTLS,
				Annotations: map[string]string{
					"io.sysnap.version": version,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to publish report: %w", err)
			}

			slog.Info("report published",
				slog.String("reference", res.Reference),
				slog.String("digest", res.Digest))

			fmt.Printf("Published %s\n", res.Reference)
			fmt.Printf("Digest: %s\n", res.Digest)
			return nil
		},
	}
}
