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
	"os"
	"path/filepath"
	"testing"

	"github.com/sysnap-io/sysnap/pkg/policy"
)

// buildConfigTree lays out a small config directory with version-control
// metadata sprinkled at two depths.
func buildConfigTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"alacritty.toml":      "[font]\nsize = 11\n",
		"hypr/hyprland.conf":  "monitor=,preferred,auto,1\n",
		"hypr/binds.conf":     "bind = SUPER, Q, killactive\n",
		".git/HEAD":           "ref: refs/heads/main\n",
		"hypr/.git/config":    "[core]\n",
		"waybar/config.jsonc": "{\"layer\": \"top\"}\n",
		"waybar/.svn/entries": "12\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "emptydir"), 0o755); err != nil {
		t.Fatalf("mkdir emptydir: %v", err)
	}
	return root
}

func entryOrigins(res Result) []string {
	origins := make([]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		origins = append(origins, e.Origin)
	}
	return origins
}

func TestDirWalkCollectorOrderAndExclusion(t *testing.T) {
	root := buildConfigTree(t)

	res := NewDirWalkCollector(root, policy.New()).Collect(context.Background())

	if res.Status != StatusText {
		t.Fatalf("Status = %q, want %q (detail: %s)", res.Status, StatusText, res.Detail)
	}
	want := []string{
		"alacritty.toml",
		"hypr/binds.conf",
		"hypr/hyprland.conf",
		"waybar/config.jsonc",
	}
	got := entryOrigins(res)
	if len(got) != len(want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, e := range res.Entries {
		if e.Status != StatusText {
			t.Errorf("entry %q: Status = %q, want %q", e.Origin, e.Status, StatusText)
		}
	}
}

func TestDirWalkCollectorDeterministic(t *testing.T) {
	root := buildConfigTree(t)
	c := NewDirWalkCollector(root, policy.New())

	first := entryOrigins(c.Collect(context.Background()))
	second := entryOrigins(c.Collect(context.Background()))

	if len(first) != len(second) {
		t.Fatalf("walk order not stable: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("walk order not stable at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestDirWalkCollectorMissingRoot(t *testing.T) {
	res := NewDirWalkCollector(filepath.Join(t.TempDir(), "nope"), policy.New()).
		Collect(context.Background())

	if res.Status != StatusSkipped {
		t.Fatalf("Status = %q, want %q", res.Status, StatusSkipped)
	}
	if res.Reason != SkipNotFound {
		t.Errorf("Reason = %q, want %q", res.Reason, SkipNotFound)
	}
}

func TestDirWalkCollectorRootIsFile(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "plain.txt", []byte("x\n"))

	res := NewDirWalkCollector(path, policy.New()).Collect(context.Background())

	if res.Status != StatusFailed {
		t.Fatalf("Status = %q, want %q", res.Status, StatusFailed)
	}
	if res.Detail != "not a directory" {
		t.Errorf("Detail = %q, want %q", res.Detail, "not a directory")
	}
}

func TestDirWalkCollectorEmptyRoot(t *testing.T) {
	res := NewDirWalkCollector(t.TempDir(), policy.New()).Collect(context.Background())

	if res.Status != StatusText {
		t.Fatalf("Status = %q, want %q", res.Status, StatusText)
	}
	if len(res.Entries) != 0 {
		t.Errorf("Entries = %v, want none", entryOrigins(res))
	}
	if res.Detail != "" {
		t.Errorf("Detail = %q, want empty", res.Detail)
	}
}

func TestDirWalkCollectorFileCap(t *testing.T) {
	root := buildConfigTree(t)

	res := NewDirWalkCollector(root, policy.New(), WithMaxWalkFiles(2)).
		Collect(context.Background())

	if res.Status != StatusText {
		t.Fatalf("Status = %q, want %q", res.Status, StatusText)
	}
	if len(res.Entries) != 2 {
		t.Errorf("Entries = %v, want exactly 2", entryOrigins(res))
	}
	if res.Detail != "enumeration stopped after 2 files" {
		t.Errorf("Detail = %q, want cap marker", res.Detail)
	}
}

func TestDirWalkCollectorPerFileIsolation(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, file permissions are not enforced")
	}

	root := t.TempDir()
	writeTestFile(t, root, "a.conf", []byte("ok\n"))
	locked := writeTestFile(t, root, "locked.conf", []byte("secret\n"))
	writeTestFile(t, root, "z.conf", []byte("also ok\n"))
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	res := NewDirWalkCollector(root, policy.New()).Collect(context.Background())

	if res.Status != StatusText {
		t.Fatalf("Status = %q, want %q", res.Status, StatusText)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("entries = %v, want 3", entryOrigins(res))
	}
	if got := res.Entries[1]; got.Status != StatusSkipped || got.Reason != SkipPermission {
		t.Errorf("locked entry = %q/%q, want %q/%q",
			got.Status, got.Reason, StatusSkipped, SkipPermission)
	}
	if res.Entries[0].Status != StatusText || res.Entries[2].Status != StatusText {
		t.Error("neighboring files should be unaffected by one unreadable file")
	}
}

func TestDirWalkCollectorSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "real.conf", []byte("content\n"))
	if err := os.Symlink(target, filepath.Join(root, "link.conf")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	res := NewDirWalkCollector(root, policy.New()).Collect(context.Background())

	got := entryOrigins(res)
	if len(got) != 1 || got[0] != "real.conf" {
		t.Errorf("entries = %v, want only real.conf", got)
	}
}

func TestDirWalkCollectorThrottled(t *testing.T) {
	root := buildConfigTree(t)

	res := NewDirWalkCollector(root, policy.New(), WithWalkThrottle(10_000)).
		Collect(context.Background())

	if res.Status != StatusText {
		t.Fatalf("Status = %q, want %q", res.Status, StatusText)
	}
	if len(res.Entries) != 4 {
		t.Errorf("entries = %v, want 4", entryOrigins(res))
	}
}

func TestDirWalkCollectorSizeAggregation(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.txt", []byte("12345"))
	writeTestFile(t, root, "b.txt", []byte("123"))

	res := NewDirWalkCollector(root, policy.New()).Collect(context.Background())

	if res.Size != 8 {
		t.Errorf("Size = %d, want 8", res.Size)
	}
}

func TestDirWalkCollectorCanceledContext(t *testing.T) {
	root := buildConfigTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewDirWalkCollector(root, policy.New()).Collect(ctx)

	if res.Status != StatusFailed {
		t.Fatalf("Status = %q, want %q", res.Status, StatusFailed)
	}
}
