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
	"io"
	"io/fs"
	"os"

	"github.com/sysnap-io/sysnap/pkg/policy"
)

// FileCollector embeds the content of a single file, subject to the
// admission policy. Absent or unreadable files are skipped, never fatal.
type FileCollector struct {
	path        string
	display     string
	placeholder string
	pol         *policy.Policy
}

// FileOption configures a FileCollector.
type FileOption func(*FileCollector)

// WithDisplayPath overrides the rendered origin, e.g. to show
// "~/.config/sysnap/notes.txt" instead of the expanded absolute path.
func WithDisplayPath(display string) FileOption {
	return func(f *FileCollector) {
		f.display = display
	}
}

// WithAbsencePlaceholder substitutes literal text when the file does not
// exist, turning absence into content instead of a skip.
func WithAbsencePlaceholder(text string) FileOption {
	return func(f *FileCollector) {
		f.placeholder = text
	}
}

// NewFileCollector creates a collector for one file path. A nil policy
// admits everything.
func NewFileCollector(path string, pol *policy.Policy, opts ...FileOption) *FileCollector {
	f := &FileCollector{path: path, pol: pol}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Origin returns the rendered label for this file.
func (f *FileCollector) Origin() string {
	if f.display != "" {
		return f.display
	}
	return f.path
}

// Kind returns KindFile.
func (f *FileCollector) Kind() Kind {
	return KindFile
}

// Collect stats, admits, and reads the file. Denials carry the file size
// and the denial detail but never any content.
func (f *FileCollector) Collect(ctx context.Context) Result {
	res := collectFile(ctx, f.path, f.Origin(), f.pol)
	if f.placeholder != "" && res.Status == StatusSkipped && res.Reason == SkipNotFound {
		return TextResult(res.Origin, f.placeholder)
	}
	return res
}

// collectFile implements the shared per-file contract used by both the
// single-file and the directory walk collectors: stat, admission check on
// name, size, and a sniff window, then full read.
func collectFile(ctx context.Context, path, origin string, pol *policy.Policy) Result {
	if err := ctx.Err(); err != nil {
		return FailResult(origin, contextDetail(ctx, 0))
	}

	info, err := os.Stat(path)
	if err != nil {
		return skipForError(origin, err)
	}
	if !info.Mode().IsRegular() {
		return SkipResult(origin, SkipBinary, "not a regular file")
	}
	size := info.Size()

	fh, err := os.Open(path)
	if err != nil {
		return skipForError(origin, err)
	}
	defer fh.Close()

	sniff := make([]byte, policy.SniffLen)
	n, err := io.ReadFull(fh, sniff)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return FailResult(origin, "read failed: "+err.Error())
	}
	sniff = sniff[:n]

	if pol != nil {
		decision := pol.Classify(path, size, sniff)
		if !decision.Admitted {
			res := SkipResult(origin, skipReasonFor(decision.Reason), decision.Detail)
			res.Size = size
			return res
		}
	}

	rest, err := io.ReadAll(fh)
	if err != nil {
		return FailResult(origin, "read failed after admission: "+err.Error())
	}
	return TextResult(origin, string(sniff)+string(rest))
}

// skipForError maps a filesystem error to the matching skip reason.
// Anything that is neither absence nor a permission problem is a real
// failure.
func skipForError(origin string, err error) Result {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return SkipResult(origin, SkipNotFound, "")
	case errors.Is(err, fs.ErrPermission):
		return SkipResult(origin, SkipPermission, "")
	default:
		return FailResult(origin, err.Error())
	}
}

// skipReasonFor maps a policy denial to the collector skip vocabulary.
func skipReasonFor(reason policy.DenyReason) SkipReason {
	if reason == policy.DenyTooLarge {
		return SkipTooLarge
	}
	return SkipBinary
}
