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

package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/sysnap-io/sysnap/pkg/policy"
)

// DefaultMaxWalkFiles bounds how many files a single walk may embed.
const DefaultMaxWalkFiles = 2000

// vcsDirNames are version-control metadata directories pruned at any
// depth. Their contents are never enumerated.
var vcsDirNames = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
	".bzr": true,
}

// DirWalkCollector recursively embeds the regular files under a root
// directory. Every file goes through the same admission and isolation
// contract as a single-file collector, so one unreadable or binary file
// never poisons the rest of the tree.
//
// Traversal is depth-first with directory entries visited in sorted
// order, which makes the rendered output deterministic and diffable
// across runs.
type DirWalkCollector struct {
	root     string
	display  string
	pol      *policy.Policy
	limiter  *rate.Limiter
	maxFiles int
}

// DirWalkOption configures a DirWalkCollector.
type DirWalkOption func(*DirWalkCollector)

// WithWalkDisplayPath overrides the rendered origin for the walk root.
func WithWalkDisplayPath(display string) DirWalkOption {
	return func(d *DirWalkCollector) {
		d.display = display
	}
}

// WithWalkThrottle paces the walk at n files per second. Zero or
// negative disables pacing.
func WithWalkThrottle(n int) DirWalkOption {
	return func(d *DirWalkCollector) {
		if n > 0 {
			d.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithMaxWalkFiles overrides the file cap. Values below one keep the
// default.
func WithMaxWalkFiles(n int) DirWalkOption {
	return func(d *DirWalkCollector) {
		if n >= 1 {
			d.maxFiles = n
		}
	}
}

// NewDirWalkCollector creates a collector that embeds the files under
// root. A nil policy admits everything.
func NewDirWalkCollector(root string, pol *policy.Policy, opts ...DirWalkOption) *DirWalkCollector {
	d := &DirWalkCollector{
		root:     root,
		pol:      pol,
		maxFiles: DefaultMaxWalkFiles,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Origin returns the rendered label for the walk root.
func (d *DirWalkCollector) Origin() string {
	if d.display != "" {
		return d.display
	}
	return d.root
}

// Kind returns KindDir.
func (d *DirWalkCollector) Kind() Kind {
	return KindDir
}

// errWalkCapped aborts enumeration once the file cap is reached.
var errWalkCapped = errors.New("walk capped")

// Collect walks the tree and returns one entry per file, each tagged
// with its path relative to the root. A missing root is a skip; an
// existing but empty tree is a valid result with zero entries.
func (d *DirWalkCollector) Collect(ctx context.Context) Result {
	origin := d.Origin()

	info, err := os.Stat(d.root)
	if err != nil {
		return skipForError(origin, err)
	}
	if !info.IsDir() {
		return FailResult(origin, "not a directory")
	}

	var (
		entries []Result
		seen    int
		capped  bool
	)
	walkErr := filepath.WalkDir(d.root, func(path string, de fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			// An unreadable subdirectory is recorded once and the
			// walk moves on; its contents are unreachable anyway.
			if path != d.root && errors.Is(err, fs.ErrPermission) {
				entries = append(entries, SkipResult(d.relOrigin(path), SkipPermission, ""))
				return nil
			}
			return err
		}
		if de.IsDir() {
			if path != d.root && vcsDirNames[de.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !de.Type().IsRegular() {
			return nil
		}
		if seen >= d.maxFiles {
			capped = true
			return errWalkCapped
		}
		seen++
		if d.limiter != nil {
			if werr := d.limiter.Wait(ctx); werr != nil {
				return werr
			}
		}
		entries = append(entries, collectFile(ctx, path, d.relOrigin(path), d.pol))
		return nil
	})

	if walkErr != nil && !errors.Is(walkErr, errWalkCapped) {
		if ctx.Err() != nil {
			return FailResult(origin, contextDetail(ctx, 0))
		}
		return FailResult(origin, walkErr.Error())
	}

	res := Result{
		Origin:  origin,
		Status:  StatusText,
		Entries: entries,
	}
	for _, e := range entries {
		res.Size += e.Size
	}
	if capped {
		res.Detail = fmt.Sprintf("enumeration stopped after %d files", d.maxFiles)
	}
	slog.Debug("directory walked",
		slog.String("root", origin),
		slog.Int("entries", len(entries)),
		slog.Bool("capped", capped),
	)
	return res
}

// relOrigin renders a walked path relative to the root.
func (d *DirWalkCollector) relOrigin(path string) string {
	rel, err := filepath.Rel(d.root, path)
	if err != nil {
		return path
	}
	return rel
}
