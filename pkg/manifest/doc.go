/*
Copyright © 2026 Sysnap Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package manifest loads user-declared report sections from YAML.
//
// A section manifest extends a report without forking the tool: it
// declares sections and their collectors in a Kubernetes-style
// document, loaded from a local file or an http(s) URL. Declared
// sections append after the built-in set in declaration order.
//
// Example manifest:
//
//	kind: SectionManifest
//	apiVersion: sysnap.dev/v1
//	metadata:
//	  name: laptop-extras
//	sections:
//	  - title: Power
//	    purpose: Battery and thermal state.
//	    collectors:
//	      - kind: command
//	        path: acpi
//	        args: ["-b"]
//	      - kind: file
//	        path: /sys/class/power_supply/BAT0/status
//	  - title: Mail Client
//	    collectors:
//	      - kind: dir
//	        root: ~/.config/aerc
//	        maxFiles: 50
//
// Commands are argv vectors; there is no shell interpolation. Dir
// roots may be absolute or ~-relative but must not contain ".."
// elements. Validation rejects unknown collector kinds.
//
// Usage:
//
//	m, err := manifest.Load(ctx, "extras.yaml")
//	if err != nil {
//	    return err
//	}
//	for _, s := range m.Build(manifest.BuildOptions{Policy: pol}) {
//	    registry.Add(s)
//	}
package manifest
