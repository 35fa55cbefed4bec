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

	"github.com/sysnap-io/sysnap/pkg/report"
	"github.com/sysnap-io/sysnap/pkg/serializer"
)

// sectionView is the serializable shape of one registry section.
type sectionView struct {
	Index      int             `json:"index" yaml:"index"`
	Title      string          `json:"title" yaml:"title"`
	Purpose    string          `json:"purpose" yaml:"purpose"`
	Collectors []collectorView `json:"collectors" yaml:"collectors"`
}

// collectorView names one collector by kind and origin.
type collectorView struct {
	Kind   string `json:"kind" yaml:"kind"`
	Origin string `json:"origin" yaml:"origin"`
}

// registryView flattens a registry for serialization, in run order.
func registryView(reg *report.Registry) []sectionView {
	sections := reg.Sections()
	views := make([]sectionView, 0, len(sections))
	for i, s := range sections {
		v := sectionView{
			Index:      i + 1,
			Title:      s.Title,
			Purpose:    s.Purpose,
			Collectors: make([]collectorView, 0, len(s.Collectors)),
		}
		for _, c := range s.Collectors {
			v.Collectors = append(v.Collectors, collectorView{
				Kind:   string(c.Kind()),
				Origin: c.Origin(),
			})
		}
		views = append(views, v)
	}
	return views
}

func sectionsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "sections",
		EnableShellCompletion: true,
		Usage:                 "List the sections a snapshot run would collect",
		Description: `Renders the effective section registry without collecting anything, so
the report contents can be audited before a run. The listing reflects the
same flags a snapshot run would use: a section manifest appends its
sections after the built-ins, and --k8s adds the cluster section.

# Examples

List the built-in sections:
  sysnap sections

Audit a run extended by a manifest:
  sysnap sections --manifest ./extras.yaml

Machine-readable listing:
  sysnap sections --format json --output sections.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "manifest",
				Aliases: []string{"m"},
				Usage:   "Path or URL of a YAML section manifest; its sections append after the built-ins",
				Sources: cli.EnvVars("SYSNAP_MANIFEST"),
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
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   string(serializer.FormatTable),
				Usage:   "Output format (supported values: table, yaml, json)",
			},
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			reg, err := buildRegistry(ctx, &snapshotCmdOptions{
				manifestPath: cmd.String("manifest"),
				configDir:    cmd.String("config-dir"),
				k8s:          cmd.Bool("k8s"),
				kubeconfig:   cmd.String("kubeconfig"),
			})
			if err != nil {
				return err
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if closer, ok := ser.(interface{ Close() error }); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			return ser.Serialize(ctx, registryView(reg))
		},
	}
}
