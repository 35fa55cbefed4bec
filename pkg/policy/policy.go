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

// Package policy decides which files may be embedded in a report.
//
// Classification applies three deny rules in order, first match wins:
// name patterns for secret and binary file types, a byte-exact size
// ceiling, and content sniffing of the leading bytes. Anything not
// denied is admitted. Classify is a pure function of its arguments so
// every rule is independently testable without touching the filesystem.
package policy

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

const (
	// DefaultMaxFileBytes is the admission ceiling: 50 MiB, counted in
	// bytes, not filesystem blocks.
	DefaultMaxFileBytes int64 = 50 * 1024 * 1024

	// SniffLen is the number of leading bytes callers should provide to
	// Classify for content detection.
	SniffLen = 512
)

// DenyReason classifies why the policy refused a file.
type DenyReason string

const (
	// DenyTooLarge marks files over the size ceiling.
	DenyTooLarge DenyReason = "too-large"
	// DenyBinary marks secret, binary, or data files whose raw content
	// does not belong in a plain-text report.
	DenyBinary DenyReason = "binary-or-data"
)

// Decision is the outcome of classifying one file.
type Decision struct {
	Admitted bool
	Reason   DenyReason
	Detail   string
}

// defaultDenyPatterns refuse files by name before any content is read.
// Patterns match the lowercased base name and support the same wildcard
// forms as Matches.
var defaultDenyPatterns = []string{
	// credential and key material
	"*.gpg", "*.pgp", "*.asc", "*.key", "*.pem", "*.p12", "*.pfx",
	"*.kdbx", "*.keytab", "*.jks", "id_rsa*", "id_ecdsa*", "id_ed25519*",
	"*.secret", "*.token", ".netrc", "*_history", "credentials*",
	// compiled and database artifacts
	"*.db", "*.db-wal", "*.db-shm", "*.sqlite", "*.sqlite3",
	"*.so", "*.o", "*.a", "*.pyc", "*.bin", "*.dat",
	// archives and media
	"*.zip", "*.tar", "*.tgz", "*.gz", "*.xz", "*.zst", "*.7z",
	"*.jpg", "*.jpeg", "*.png", "*.gif", "*.webp", "*.ico",
	"*.mp3", "*.mp4", "*.mkv", "*.pdf", "*.iso", "*.img",
}

// Option configures a Policy.
type Option func(*Policy)

// WithMaxFileBytes overrides the size ceiling. Values below 1 are ignored.
func WithMaxFileBytes(n int64) Option {
	return func(p *Policy) {
		if n > 0 {
			p.maxFileBytes = n
		}
	}
}

// WithDenyPatterns replaces the default name deny patterns.
func WithDenyPatterns(patterns ...string) Option {
	return func(p *Policy) {
		p.denyPatterns = patterns
	}
}

// Policy holds the admission rules for file content.
type Policy struct {
	maxFileBytes int64
	denyPatterns []string
}

// New creates a Policy with the default ceiling and deny patterns.
func New(opts ...Option) *Policy {
	p := &Policy{
		maxFileBytes: DefaultMaxFileBytes,
		denyPatterns: defaultDenyPatterns,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxFileBytes returns the configured size ceiling.
func (p *Policy) MaxFileBytes() int64 {
	return p.maxFileBytes
}

// Classify decides whether a file may be embedded in the report.
// path supplies the name for pattern matching, size the byte count from
// stat, and sniff the leading bytes (up to SniffLen) for content
// detection. Rules apply in order; the first deny wins:
//
//  1. name matches a deny pattern
//  2. size exceeds the ceiling
//  3. content sniffing does not identify text, or the sniff window
//     contains NUL bytes
//
// Sniffing ambiguity resolves toward exclusion: content the detector
// cannot place in the text hierarchy is denied, never embedded.
func (p *Policy) Classify(path string, size int64, sniff []byte) Decision {
	name := strings.ToLower(filepath.Base(path))
	for _, pattern := range p.denyPatterns {
		if Matches(name, pattern) {
			return Decision{
				Reason: DenyBinary,
				Detail: fmt.Sprintf("name matches %q", pattern),
			}
		}
	}

	if size > p.maxFileBytes {
		return Decision{
			Reason: DenyTooLarge,
			Detail: fmt.Sprintf("%s exceeds the %s limit",
				humanize.IBytes(uint64(size)), humanize.IBytes(uint64(p.maxFileBytes))),
		}
	}

	// Empty files carry no content to misclassify.
	if len(sniff) == 0 {
		return Decision{Admitted: true}
	}

	mime := mimetype.Detect(sniff)
	if !isText(mime) {
		return Decision{
			Reason: DenyBinary,
			Detail: mime.String(),
		}
	}

	// NUL bytes never appear in the text this report embeds; UTF-16 and
	// mixed content count as opaque even when the detector says text.
	if bytes.IndexByte(sniff, 0x00) != -1 {
		return Decision{
			Reason: DenyBinary,
			Detail: fmt.Sprintf("%s with NUL bytes", mime.String()),
		}
	}

	return Decision{Admitted: true}
}

// isText walks the detected MIME hierarchy looking for text/plain.
func isText(m *mimetype.MIME) bool {
	for mt := m; mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return true
		}
	}
	return false
}

// Matches checks if a name matches a wildcard pattern.
// Supports multiple wildcard segments, e.g., "a*b*c" matches "aXbYc":
//   - "prefix*" matches names starting with "prefix"
//   - "*suffix" matches names ending with "suffix"
//   - "*contains*" matches names containing "contains"
//   - "exact" matches names exactly
func Matches(name, pattern string) bool {
	// No wildcard - exact match
	if !strings.Contains(pattern, "*") {
		return name == pattern
	}

	// Split pattern by wildcards to get required segments
	segments := strings.Split(pattern, "*")

	// Empty pattern or just wildcards - matches everything
	if len(segments) == 0 {
		return true
	}

	pos := 0
	for i, segment := range segments {
		if segment == "" {
			continue // Skip empty segments from consecutive wildcards
		}

		// First segment must be at the start (unless pattern starts with *)
		if i == 0 && pattern[0] != '*' {
			if !strings.HasPrefix(name, segment) {
				return false
			}
			pos = len(segment)
			continue
		}

		// Last segment must be at the end (unless pattern ends with *)
		if i == len(segments)-1 && pattern[len(pattern)-1] != '*' {
			return strings.HasSuffix(name[pos:], segment)
		}

		// Middle segments must appear in order
		idx := strings.Index(name[pos:], segment)
		if idx == -1 {
			return false
		}
		pos += idx + len(segment)
	}

	return true
}
