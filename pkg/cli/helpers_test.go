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

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// scriptPrompts replaces the prompt input stream with scripted answers
// and restores it when the test finishes. Tests using it must not run
// in parallel.
func scriptPrompts(t *testing.T, input string) {
	t.Helper()
	old := stdin
	stdin = strings.NewReader(input)
	t.Cleanup(func() { stdin = old })
}

func TestPromptString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		def     string
		want    string
		wantErr bool
	}{
		{
			name:  "explicit value",
			input: "custom.txt\n",
			def:   "report.txt",
			want:  "custom.txt",
		},
		{
			name:  "empty line returns default",
			input: "\n",
			def:   "report.txt",
			want:  "report.txt",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  notes.txt  \n",
			def:   "report.txt",
			want:  "notes.txt",
		},
		{
			name:    "closed input stream",
			input:   "",
			def:     "report.txt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scriptPrompts(t, tt.input)

			got, err := promptString("Report filename", tt.def)
			if (err != nil) != tt.wantErr {
				t.Fatalf("promptString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("promptString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "yes", input: "yes\n", want: true},
		{name: "uppercase Y", input: "Y\n", want: true},
		{name: "n", input: "n\n", want: false},
		{name: "empty line defaults to no", input: "\n", want: false},
		{name: "garbage defaults to no", input: "whatever\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scriptPrompts(t, tt.input)

			got, err := promptYesNo("overwrite?")
			if err != nil {
				t.Fatalf("promptYesNo() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("promptYesNo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPromptYesNoClosedInput(t *testing.T) {
	scriptPrompts(t, "")

	if _, err := promptYesNo("overwrite?"); err == nil {
		t.Fatal("expected error for closed input stream")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "tilde slash", path: "~/reports", want: filepath.Join(home, "reports")},
		{name: "bare tilde", path: "~", want: home},
		{name: "absolute untouched", path: "/var/tmp", want: "/var/tmp"},
		{name: "relative untouched", path: "reports", want: "reports"},
		{name: "tilde in middle untouched", path: "/data/~/x", want: "/data/~/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandHome(tt.path); got != tt.want {
				t.Errorf("expandHome(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestToolID(t *testing.T) {
	oldVersion, oldCommit := version, commit
	t.Cleanup(func() { version, commit = oldVersion, oldCommit })

	version, commit = "v1.2.0", "4f9c2d1ab0ffc0de"
	if got, want := toolID(), "sysnap v1.2.0 (4f9c2d1)"; got != want {
		t.Errorf("toolID() = %q, want %q", got, want)
	}

	version, commit = "dev", "unknown"
	if got, want := toolID(), "sysnap dev"; got != want {
		t.Errorf("toolID() = %q, want %q", got, want)
	}
}
