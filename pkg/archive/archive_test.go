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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sysnap-io/sysnap/pkg/checksum"
)

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	ts := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func writeArchive(t *testing.T, dir, stamp, content string) string {
	t.Helper()
	path := filepath.Join(dir, "report-"+stamp+".txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to seed archive %s: %v", path, err)
	}
	return path
}

func TestRotate_NoPreviousReport(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "sysnap")
	rot := NewRotator(dir, DefaultKeep)
	rot.now = fixedClock(t)

	res, err := rot.Rotate(context.Background())
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	if res.Archived != "" {
		t.Errorf("Archived = %q, want empty", res.Archived)
	}
	if len(res.Pruned) != 0 {
		t.Errorf("Pruned = %v, want none", res.Pruned)
	}

	// Directory must exist for the upcoming run.
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("report directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("report path is not a directory")
	}

	// No manifest with nothing archived.
	if _, err := os.Stat(checksum.ManifestPath(dir)); err == nil {
		t.Error("checksums.txt should not exist without archives")
	}
}

func TestRotate_ArchivesPreviousReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rot := NewRotator(dir, DefaultKeep)
	rot.now = fixedClock(t)

	current := filepath.Join(dir, ReportName)
	if err := os.WriteFile(current, []byte("previous run"), 0600); err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}

	res, err := rot.Rotate(context.Background())
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	want := filepath.Join(dir, "report-20260315T103000Z.txt")
	if res.Archived != want {
		t.Errorf("Archived = %q, want %q", res.Archived, want)
	}

	// Content moved, not copied.
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("failed to read archive: %v", err)
	}
	if string(data) != "previous run" {
		t.Errorf("archive content = %q, want %q", string(data), "previous run")
	}
	if _, err := os.Stat(current); err == nil {
		t.Error("report.txt should be gone after rotation")
	}

	// Manifest covers the new archive.
	manifest, err := os.ReadFile(checksum.ManifestPath(dir))
	if err != nil {
		t.Fatalf("failed to read checksums.txt: %v", err)
	}
	if !strings.Contains(string(manifest), "report-20260315T103000Z.txt") {
		t.Errorf("manifest missing archive entry: %s", string(manifest))
	}
}

func TestRotate_SameSecondRerun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rot := NewRotator(dir, DefaultKeep)
	rot.now = fixedClock(t)

	// An archive already carries the current stamp.
	writeArchive(t, dir, "20260315T103000Z", "first")

	current := filepath.Join(dir, ReportName)
	if err := os.WriteFile(current, []byte("second"), 0600); err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}

	res, err := rot.Rotate(context.Background())
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	// Stamp advanced one second instead of clobbering.
	want := filepath.Join(dir, "report-20260315T103001Z.txt")
	if res.Archived != want {
		t.Errorf("Archived = %q, want %q", res.Archived, want)
	}

	first, err := os.ReadFile(filepath.Join(dir, "report-20260315T103000Z.txt"))
	if err != nil {
		t.Fatalf("original archive lost: %v", err)
	}
	if string(first) != "first" {
		t.Errorf("original archive content = %q, want %q", string(first), "first")
	}
}

func TestRotate_PrunesOldestBeyondRetention(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rot := NewRotator(dir, 5)
	rot.now = fixedClock(t)

	stamps := []string{
		"20260301T000000Z",
		"20260302T000000Z",
		"20260303T000000Z",
		"20260304T000000Z",
		"20260305T000000Z",
		"20260306T000000Z",
		"20260307T000000Z",
	}
	for _, stamp := range stamps {
		writeArchive(t, dir, stamp, "run "+stamp)
	}

	// Give the lexicographically oldest archive the newest mtime.
	// Pruning must go by name, not modification time.
	oldest := filepath.Join(dir, "report-20260301T000000Z.txt")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(oldest, future, future); err != nil {
		t.Fatalf("failed to adjust mtime: %v", err)
	}

	res, err := rot.Rotate(context.Background())
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	// Exactly count-keep removed, oldest first.
	if len(res.Pruned) != 2 {
		t.Fatalf("Pruned %d archives, want 2: %v", len(res.Pruned), res.Pruned)
	}
	if filepath.Base(res.Pruned[0]) != "report-20260301T000000Z.txt" {
		t.Errorf("first pruned = %s, want report-20260301T000000Z.txt", res.Pruned[0])
	}
	if filepath.Base(res.Pruned[1]) != "report-20260302T000000Z.txt" {
		t.Errorf("second pruned = %s, want report-20260302T000000Z.txt", res.Pruned[1])
	}

	for _, stamp := range stamps[:2] {
		if _, err := os.Stat(filepath.Join(dir, "report-"+stamp+".txt")); err == nil {
			t.Errorf("archive %s should have been pruned", stamp)
		}
	}
	for _, stamp := range stamps[2:] {
		if _, err := os.Stat(filepath.Join(dir, "report-"+stamp+".txt")); err != nil {
			t.Errorf("archive %s should have survived: %v", stamp, err)
		}
	}

	// Manifest lists exactly the survivors.
	manifest, err := os.ReadFile(checksum.ManifestPath(dir))
	if err != nil {
		t.Fatalf("failed to read checksums.txt: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(manifest)), "\n")
	if len(lines) != 5 {
		t.Errorf("manifest has %d entries, want 5", len(lines))
	}
	if strings.Contains(string(manifest), "20260301T000000Z") {
		t.Error("manifest still lists a pruned archive")
	}
}

func TestRotate_NeverPrunesBelowRetention(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rot := NewRotator(dir, 5)
	rot.now = fixedClock(t)

	writeArchive(t, dir, "20260301T000000Z", "a")
	writeArchive(t, dir, "20260302T000000Z", "b")
	writeArchive(t, dir, "20260303T000000Z", "c")

	res, err := rot.Rotate(context.Background())
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	if len(res.Pruned) != 0 {
		t.Errorf("Pruned = %v, want none with count below retention", res.Pruned)
	}
}

func TestRotate_IgnoresForeignFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rot := NewRotator(dir, 0)
	rot.now = fixedClock(t)

	// Retention zero would prune every archive; files that do not parse
	// as archives must not be touched.
	foreign := []string{"report-final.txt", "notes.txt", "report-.txt"}
	for _, name := range foreign {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("keep"), 0600); err != nil {
			t.Fatalf("failed to seed %s: %v", name, err)
		}
	}
	writeArchive(t, dir, "20260301T000000Z", "prune me")

	res, err := rot.Rotate(context.Background())
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	if len(res.Pruned) != 1 {
		t.Fatalf("Pruned %d, want 1: %v", len(res.Pruned), res.Pruned)
	}
	for _, name := range foreign {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("foreign file %s should be untouched: %v", name, err)
		}
	}

	// Nothing archived left, stale manifest removed.
	if _, err := os.Stat(checksum.ManifestPath(dir)); err == nil {
		t.Error("checksums.txt should be removed when no archives remain")
	}
}

func TestRotate_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rot := NewRotator(t.TempDir(), DefaultKeep)
	if _, err := rot.Rotate(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNewRotator_NegativeKeep(t *testing.T) {
	t.Parallel()

	rot := NewRotator(t.TempDir(), -3)
	if rot.keep != 0 {
		t.Errorf("keep = %d, want 0 for negative input", rot.keep)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Parallel()

	dir := DefaultDir()
	if dir == "" {
		t.Fatal("DefaultDir() returned empty path")
	}
	if filepath.Base(dir) != "sysnap" {
		t.Errorf("DefaultDir() = %s, want a sysnap directory", dir)
	}
}
