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

// Package collector provides interfaces and implementations for capturing
// diagnostic data from a host.
//
// # Overview
//
// This package defines a unified interface for gathering snapshot blocks
// from various sources: external commands, individual files, recursive
// directory walks, and literal text. Collectors never return errors;
// every outcome, including a broken command or an unreadable file, is
// expressed as a tagged Result so a single bad source can never abort a
// snapshot run.
//
// # Core Interface
//
// The Collector interface defines one method for capturing data:
//
//	type Collector interface {
//	    Origin() string
//	    Kind() Kind
//	    Collect(ctx context.Context) Result
//	}
//
// All collectors honor context-based cancellation so a stuck source can
// be bounded with a timeout.
//
// # Result Model
//
// Collect returns exactly one Result per collector. The Status tag
// partitions outcomes into three classes:
//
//   - StatusText: content was captured and Body holds it.
//   - StatusSkipped: the source was deliberately left out; Reason says
//     why (not-found, permission-denied, too-large, binary-or-data).
//     Skips carry metadata such as the file size but never content.
//   - StatusFailed: the source was expected to work and did not, e.g. a
//     command exited non-zero. Failures are tallied in the report's
//     trailing summary.
//
// # Available Collectors
//
// CommandCollector: runs one external command from an argv vector with a
// bounded environment, capturing interleaved stdout and stderr with ANSI
// escape sequences stripped.
//
// FileCollector: embeds one file's content, subject to the admission
// policy in the policy package. Secret-looking names, oversized files,
// and binary content are skipped with the denial detail preserved.
//
// DirWalkCollector: recursively embeds the regular files under a root,
// pruning version-control metadata directories and applying the same
// per-file admission and isolation contract as FileCollector.
//
// StaticCollector: emits literal text and has no failure mode.
//
// # Usage Example
//
//	pol := policy.New()
//	c := collector.NewFileCollector("/etc/os-release", pol)
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	res := c.Collect(ctx)
//	switch res.Status {
//	case collector.StatusText:
//	    fmt.Println(res.Body)
//	case collector.StatusSkipped:
//	    fmt.Printf("skipped (%s)\n", res.Reason)
//	case collector.StatusFailed:
//	    fmt.Printf("failed: %s\n", res.Detail)
//	}
//
// # Subpackages
//
// The collector package is organized into subpackages by data source:
//   - collector/systemd - unit states over the systemd D-Bus API
//   - collector/k8s - Kubernetes cluster inventory
//
// # Error Handling
//
// Collectors do not surface Go errors. Panics inside a collector are the
// caller's concern: the report assembler recovers them into Failed
// results at the section boundary.
package collector
