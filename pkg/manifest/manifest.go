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

package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sysnap-io/sysnap/pkg/collector"
	"github.com/sysnap-io/sysnap/pkg/header"
	"github.com/sysnap-io/sysnap/pkg/policy"
	"github.com/sysnap-io/sysnap/pkg/report"
	"github.com/sysnap-io/sysnap/pkg/serializer"
)

// APIVersion is the schema version accepted for section manifests.
const APIVersion = "sysnap.dev/v1"

// Collector kinds a manifest may declare.
const (
	KindCommand = "command"
	KindFile    = "file"
	KindDir     = "dir"
	KindNote    = "note"
)

// Manifest declares extra report sections in a Kubernetes-style YAML
// document. Declared sections append after the built-in set in
// declaration order.
type Manifest struct {
	header.Header `json:",inline" yaml:",inline"`

	Sections []SectionSpec `json:"sections" yaml:"sections"`
}

// SectionSpec declares one report section.
type SectionSpec struct {
	Title      string          `json:"title" yaml:"title"`
	Purpose    string          `json:"purpose,omitempty" yaml:"purpose,omitempty"`
	Collectors []CollectorSpec `json:"collectors" yaml:"collectors"`
}

// CollectorSpec declares one collector inside a section. Kind selects
// which of the remaining fields apply: command uses Path and Args as an
// argv vector, file uses Path, dir uses Root and MaxFiles, note uses
// Text.
type CollectorSpec struct {
	Kind string `json:"kind" yaml:"kind"`

	// Description optionally overrides the rendered origin label.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Path string   `json:"path,omitempty" yaml:"path,omitempty"`
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`

	Root     string `json:"root,omitempty" yaml:"root,omitempty"`
	MaxFiles int    `json:"maxFiles,omitempty" yaml:"maxFiles,omitempty"`

	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Load reads and validates a section manifest from a local file path or
// an http(s) URL.
func Load(ctx context.Context, source string) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		m, err = serializer.FromURL[Manifest](ctx, source)
	} else {
		m, err = serializer.FromFile[Manifest](source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load section manifest from %q: %w", source, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid section manifest %q: %w", source, err)
	}

	return m, nil
}

// Validate checks the envelope and every declared section. An empty
// kind or apiVersion is tolerated; a wrong one is not.
func (m *Manifest) Validate() error {
	if m == nil {
		return fmt.Errorf("manifest cannot be nil")
	}

	if m.Kind != "" && m.Kind != header.KindSectionManifest {
		return fmt.Errorf("invalid kind %q, expected %q", m.Kind, header.KindSectionManifest)
	}
	if m.APIVersion != "" && m.APIVersion != APIVersion {
		return fmt.Errorf("invalid apiVersion %q, expected %q", m.APIVersion, APIVersion)
	}
	if len(m.Sections) == 0 {
		return fmt.Errorf("manifest declares no sections")
	}

	for i, s := range m.Sections {
		if err := s.validate(); err != nil {
			return fmt.Errorf("section %d (%q): %w", i, s.Title, err)
		}
	}

	return nil
}

func (s *SectionSpec) validate() error {
	if s.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(s.Collectors) == 0 {
		return fmt.Errorf("no collectors declared")
	}

	for i := range s.Collectors {
		if err := s.Collectors[i].validate(); err != nil {
			return fmt.Errorf("collector %d: %w", i, err)
		}
	}

	return nil
}

func (c *CollectorSpec) validate() error {
	switch c.Kind {
	case KindCommand:
		if c.Path == "" {
			return fmt.Errorf("command requires a path; the argv vector cannot be empty")
		}
	case KindFile:
		if c.Path == "" {
			return fmt.Errorf("file requires a path")
		}
	case KindDir:
		if c.Root == "" {
			return fmt.Errorf("dir requires a root")
		}
		if hasDotDot(c.Root) {
			return fmt.Errorf("dir root %q must not contain '..' elements", c.Root)
		}
	case KindNote:
		if c.Text == "" {
			return fmt.Errorf("note requires text")
		}
	case "":
		return fmt.Errorf("collector kind is required")
	default:
		return fmt.Errorf("unknown collector kind %q", c.Kind)
	}

	return nil
}

// BuildOptions carries the run-level knobs manifest collectors share
// with the built-in section set.
type BuildOptions struct {
	// Policy guards file and dir admission. Nil applies the default
	// policy.
	Policy *policy.Policy

	// WalkThrottle paces dir walks in files per second. Zero disables
	// pacing.
	WalkThrottle int
}

// Build converts the declared sections into report sections, in
// declaration order. Call Validate first; Build trusts its input.
func (m *Manifest) Build(opts BuildOptions) []report.Section {
	pol := opts.Policy
	if pol == nil {
		pol = policy.New()
	}

	sections := make([]report.Section, 0, len(m.Sections))
	for _, spec := range m.Sections {
		s := report.Section{
			Title:   spec.Title,
			Purpose: spec.Purpose,
		}
		for i := range spec.Collectors {
			s.Collectors = append(s.Collectors, spec.Collectors[i].build(pol, opts.WalkThrottle))
		}
		sections = append(sections, s)
	}

	return sections
}

func (c *CollectorSpec) build(pol *policy.Policy, throttle int) collector.Collector {
	switch c.Kind {
	case KindCommand:
		return collector.NewCommandCollector(collector.Command{
			Description: c.Description,
			Path:        c.Path,
			Args:        c.Args,
		})

	case KindFile:
		path := expandHome(c.Path)
		var opts []collector.FileOption
		if path != c.Path {
			opts = append(opts, collector.WithDisplayPath(c.Path))
		}
		return collector.NewFileCollector(path, pol, opts...)

	case KindDir:
		root := expandHome(c.Root)
		opts := []collector.DirWalkOption{
			collector.WithWalkThrottle(throttle),
		}
		if root != c.Root {
			opts = append(opts, collector.WithWalkDisplayPath(c.Root))
		}
		if c.MaxFiles > 0 {
			opts = append(opts, collector.WithMaxWalkFiles(c.MaxFiles))
		}
		return collector.NewDirWalkCollector(root, pol, opts...)

	default:
		// Validate admitted only the kinds above plus note.
		desc := c.Description
		if desc == "" {
			desc = "note"
		}
		return collector.NewStaticCollector(desc, c.Text)
	}
}

// hasDotDot reports whether any path element is "..". Absolute roots
// are allowed; escaping a declared root is not.
func hasDotDot(path string) bool {
	for _, elem := range strings.Split(filepath.ToSlash(path), "/") {
		if elem == ".." {
			return true
		}
	}
	return false
}

// expandHome resolves a leading ~/ against the user home directory so
// manifests can name user files portably.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
