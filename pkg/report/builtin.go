// Copyright (c) 2026, Sysnap Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/sysnap-io/sysnap/pkg/collector"
	"github.com/sysnap-io/sysnap/pkg/collector/k8s"
	"github.com/sysnap-io/sysnap/pkg/collector/systemd"
	"github.com/sysnap-io/sysnap/pkg/policy"
)

// notesPlaceholder renders in place of the user notes file when it does
// not exist. Absence is content, not an error.
const notesPlaceholder = `No user notes found.

Create ~/.config/sysnap/notes.txt to carry machine-specific context
into every report: hardware quirks, workarounds in place, pending
follow-ups. The file is included verbatim as the first section.`

// appendixText closes every report with pointers for extending it.
const appendixText = `The sections above are the baseline capture. Worth adding when
chasing a specific problem:

  journalctl -b -1 -p err          errors from the previous boot
  dmesg --level=err,warn           kernel ring buffer warnings
  systemd-analyze blame            slow units at boot
  smartctl -a /dev/<disk>          drive health (needs root)
  ss -tulpn                        listening sockets (needs root)
  iwctl station <dev> show         wireless link details
  pactl list sinks short           audio routing

Extra sections belong in a section manifest rather than a fork of the
tool; see the --manifest flag of the snapshot command.`

// BuiltinConfig carries the host-specific knobs for the default
// section set. The zero value is a sensible desktop capture.
type BuiltinConfig struct {
	// NotesPath overrides the user notes location. Empty means
	// $XDG_CONFIG_HOME/sysnap/notes.txt.
	NotesPath string

	// ConfigRoot overrides the configuration walk root. Empty means
	// the XDG config home (~/.config).
	ConfigRoot string

	// WalkThrottle paces the configuration walk in files per second.
	// Zero disables pacing.
	WalkThrottle int

	// Kubernetes enables the opt-in cluster section. When false the
	// section is absent from the registry, not skipped at run time.
	Kubernetes bool

	// Kubeconfig is the kubeconfig path for the cluster section.
	// Empty falls back to KUBECONFIG and then ~/.kube/config.
	Kubeconfig string

	// Policy guards file and walk admission. Nil applies the default
	// policy rather than admitting everything.
	Policy *policy.Policy
}

// DefaultRegistry builds the built-in section set in its fixed order:
// user notes first, appendix last, the cluster section (when enabled)
// just before the appendix.
func DefaultRegistry(cfg BuiltinConfig) *Registry {
	pol := cfg.Policy
	if pol == nil {
		pol = policy.New()
	}

	notesPath := cfg.NotesPath
	if notesPath == "" {
		notesPath = filepath.Join(xdg.ConfigHome, "sysnap", "notes.txt")
	}

	configRoot := cfg.ConfigRoot
	configDisplay := configRoot
	if configRoot == "" {
		configRoot = xdg.ConfigHome
		configDisplay = "~/.config"
	}

	reg := NewRegistry(
		Section{
			Title:   "User Notes",
			Purpose: "Machine-specific notes kept by the user, included verbatim.",
			Collectors: []collector.Collector{
				collector.NewFileCollector(notesPath, pol,
					collector.WithDisplayPath("~/.config/sysnap/notes.txt"),
					collector.WithAbsencePlaceholder(notesPlaceholder)),
			},
		},
		Section{
			Title:   "System",
			Purpose: "OS identity, kernel, and boot parameters.",
			Collectors: []collector.Collector{
				collector.NewFileCollector("/etc/os-release", pol),
				collector.NewFileCollector("/proc/cmdline", pol),
				cmd("", "uname", "-a"),
				cmd("", "uptime"),
				cmd("", "hostnamectl", "status"),
			},
		},
		Section{
			Title:   "Hardware",
			Purpose: "CPU, memory, buses, and thermal sensors.",
			Collectors: []collector.Collector{
				cmd("", "lscpu"),
				cmd("", "free", "-h"),
				cmd("", "lspci"),
				cmd("", "lsusb"),
				cmd("", "sensors"),
			},
		},
		Section{
			Title:   "Storage",
			Purpose: "Filesystems, block devices, and mounts.",
			Collectors: []collector.Collector{
				cmd("", "df", "-h"),
				cmd("", "lsblk", "-f"),
				cmd("", "findmnt", "--real"),
			},
		},
		Section{
			Title:   "Network",
			Purpose: "Interfaces, routes, DNS, and connection state.",
			Collectors: []collector.Collector{
				cmd("", "ip", "addr"),
				cmd("", "ip", "route"),
				cmd("", "resolvectl", "status"),
				cmd("", "nmcli", "general", "status"),
				cmd("", "nmcli", "connection", "show"),
			},
		},
		Section{
			Title:   "Desktop Session",
			Purpose: "Login sessions and compositor state.",
			Collectors: []collector.Collector{
				cmd("", "loginctl", "list-sessions"),
				cmd("", "hyprctl", "version"),
				cmd("", "hyprctl", "monitors"),
			},
		},
		Section{
			Title:   "Services",
			Purpose: "State of key system services and anything failed.",
			Collectors: []collector.Collector{
				systemd.NewUnitsCollector(nil),
				systemd.NewFailedUnitsCollector(),
			},
		},
		Section{
			Title:   "Packages",
			Purpose: "Explicitly installed packages.",
			Collectors: []collector.Collector{
				cmd("explicit pacman packages", "pacman", "-Qe"),
				cmd("", "flatpak", "list"),
			},
		},
		Section{
			Title:   "Logs",
			Purpose: "Errors from the current boot.",
			Collectors: []collector.Collector{
				cmd("recent boot errors", "journalctl", "-b", "-p", "err", "-n", "200", "--no-pager"),
			},
		},
		Section{
			Title:   "Configuration Files",
			Purpose: "The user configuration tree, policy-filtered.",
			Collectors: []collector.Collector{
				collector.NewDirWalkCollector(configRoot, pol,
					collector.WithWalkDisplayPath(configDisplay),
					collector.WithWalkThrottle(cfg.WalkThrottle)),
			},
		},
	)

	if cfg.Kubernetes {
		reg.Add(Section{
			Title:   "Kubernetes",
			Purpose: "Cluster identity and node inventory.",
			Collectors: []collector.Collector{
				k8s.NewClusterCollector(k8s.WithKubeconfig(cfg.Kubeconfig)),
			},
		})
	}

	reg.Add(Section{
		Title:   "Appendix",
		Purpose: "Pointers for extending future reports.",
		Collectors: []collector.Collector{
			collector.NewStaticCollector("extension ideas", appendixText),
		},
	})

	return reg
}

func cmd(description, path string, args ...string) *collector.CommandCollector {
	return collector.NewCommandCollector(collector.Command{
		Description: description,
		Path:        path,
		Args:        args,
	})
}
