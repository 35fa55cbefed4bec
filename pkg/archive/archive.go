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

package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/sysnap-io/sysnap/pkg/checksum"
	snaperrors "github.com/sysnap-io/sysnap/pkg/errors"
)

const (
	// DefaultKeep is the number of archived reports retained in
	// automatic mode.
	DefaultKeep = 5

	// ReportName is the fixed artifact name in automatic mode.
	ReportName = "report.txt"

	// Stamp layout for archive names. Fixed-width UTC so lexicographic
	// order of names equals chronological order; pruning never needs
	// file mtimes.
	stampLayout = "20060102T150405Z"

	archivePrefix = "report-"
	archiveSuffix = ".txt"
)

// DefaultDir returns the report home directory under the XDG data home
// (typically ~/.local/share/sysnap).
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, "sysnap")
}

// Result describes what a rotation did.
type Result struct {
	// Archived is the path the previous report was moved to. Empty when
	// there was no previous report.
	Archived string

	// Pruned lists archive paths removed to honor the retention count,
	// oldest first.
	Pruned []string
}

// Rotator archives the current report before a new run overwrites it
// and prunes archives beyond the retention count.
type Rotator struct {
	dir  string
	keep int

	// injected in tests
	now func() time.Time
}

// NewRotator creates a Rotator for the given report directory keeping
// at most keep archives. Negative keep is treated as zero.
func NewRotator(dir string, keep int) *Rotator {
	if keep < 0 {
		keep = 0
	}
	return &Rotator{
		dir:  dir,
		keep: keep,
		now:  time.Now,
	}
}

// Rotate moves an existing report.txt aside to report-<stamp>.txt,
// removes the oldest archives beyond the retention count, and
// refreshes the checksum manifest covering the remaining archives.
// The report directory is created if missing.
//
// Rotation never removes more than count-keep archives and never
// leaves fewer than keep behind.
func (r *Rotator) Rotate(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	if err := os.MkdirAll(r.dir, 0700); err != nil {
		return nil, snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
			fmt.Sprintf("failed to create report directory %s", r.dir), err)
	}

	res := &Result{}

	current := filepath.Join(r.dir, ReportName)
	_, err := os.Stat(current)
	switch {
	case err == nil:
		target, pathErr := r.nextArchivePath()
		if pathErr != nil {
			return nil, pathErr
		}
		if renameErr := os.Rename(current, target); renameErr != nil {
			return nil, snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
				"failed to archive previous report", renameErr)
		}
		res.Archived = target
		slog.Debug("previous report archived",
			"from", current,
			"to", target,
		)
	case errors.Is(err, fs.ErrNotExist):
		// First run in this directory, nothing to archive.
	default:
		return nil, snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
			"failed to stat previous report", err)
	}

	pruned, err := r.prune()
	if err != nil {
		return nil, err
	}
	res.Pruned = pruned

	if err := r.writeChecksums(ctx); err != nil {
		return nil, err
	}

	return res, nil
}

// nextArchivePath returns a free archive path named after the current
// UTC time. Reruns within the same second advance the stamp until the
// name is unused, keeping every archive name parseable and sortable.
func (r *Rotator) nextArchivePath() (string, error) {
	ts := r.now().UTC()
	for {
		name := archivePrefix + ts.Format(stampLayout) + archiveSuffix
		path := filepath.Join(r.dir, name)

		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
				fmt.Sprintf("failed to stat archive candidate %s", path), err)
		}

		ts = ts.Add(time.Second)
	}
}

// archives returns archive file names in the report directory in
// ascending stamp order. Names that do not parse as archive stamps
// are not archives and are left alone.
func (r *Rotator) archives() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
			fmt.Sprintf("failed to list report directory %s", r.dir), err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, archivePrefix) || !strings.HasSuffix(name, archiveSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, archivePrefix), archiveSuffix)
		if _, err := time.Parse(stampLayout, stamp); err != nil {
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// prune removes the oldest archives beyond the retention count and
// returns the removed paths, oldest first.
func (r *Rotator) prune() ([]string, error) {
	names, err := r.archives()
	if err != nil {
		return nil, err
	}
	if len(names) <= r.keep {
		return nil, nil
	}

	drop := names[:len(names)-r.keep]
	pruned := make([]string, 0, len(drop))

	for _, name := range drop {
		path := filepath.Join(r.dir, name)
		if err := os.Remove(path); err != nil {
			return pruned, snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
				fmt.Sprintf("failed to prune archive %s", name), err)
		}
		pruned = append(pruned, path)
		slog.Debug("archive pruned", "path", path)
	}

	return pruned, nil
}

// writeChecksums refreshes the checksums.txt manifest to cover exactly
// the archives still present. With no archives left the stale manifest
// is removed.
func (r *Rotator) writeChecksums(ctx context.Context) error {
	names, err := r.archives()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		err := os.Remove(checksum.ManifestPath(r.dir))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
				"failed to remove stale checksum manifest", err)
		}
		return nil
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, filepath.Join(r.dir, name))
	}

	if err := checksum.WriteManifest(ctx, r.dir, files); err != nil {
		return snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
			"failed to write archive checksums", err)
	}

	return nil
}
