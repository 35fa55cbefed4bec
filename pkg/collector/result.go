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

import "context"

// Kind identifies the collector variant that produced a result.
type Kind string

// Valid collector kinds.
const (
	KindCommand Kind = "command"
	KindFile    Kind = "file"
	KindDir     Kind = "dir"
	KindNote    Kind = "note"
	KindService Kind = "service"
	KindCluster Kind = "cluster"
)

// Status is the outcome tag on a Result. Every collector execution yields
// exactly one status; there is no partial or mixed outcome.
type Status string

const (
	// StatusText means content was captured and may be embedded.
	StatusText Status = "text"
	// StatusSkipped means the source was deliberately not embedded; the
	// Reason field says why. Skips are expected outcomes, not errors.
	StatusSkipped Status = "skipped"
	// StatusFailed means the collector attempted capture and could not
	// complete it. Failed results feed the report's failure ledger.
	StatusFailed Status = "failed"
)

// SkipReason qualifies a StatusSkipped result.
type SkipReason string

const (
	// SkipNotFound marks a source that does not exist on this host.
	SkipNotFound SkipReason = "not-found"
	// SkipPermission marks a source the process may not read.
	SkipPermission SkipReason = "permission-denied"
	// SkipTooLarge marks a file over the admission size ceiling.
	SkipTooLarge SkipReason = "too-large"
	// SkipBinary marks secret, binary, or data content excluded by policy.
	SkipBinary SkipReason = "binary-or-data"
)

// Result is the single outcome of one collector execution.
//
// A Text result carries captured content in Body. A Skipped result carries
// only the origin, reason, and metadata (Detail, Size), never content
// bytes: a file refused for being oversized or binary must not leak into
// the report through its own skip record. A Failed result carries a Detail
// describing what went wrong.
//
// Directory walk collectors return one Result per walked file in Entries,
// each under a root-relative origin; the outer Result then only frames the
// walk itself.
type Result struct {
	Origin  string
	Status  Status
	Body    string
	Reason  SkipReason
	Detail  string
	Size    int64
	Entries []Result
}

// TextResult builds a successful capture.
func TextResult(origin, body string) Result {
	return Result{Origin: origin, Status: StatusText, Body: body, Size: int64(len(body))}
}

// SkipResult builds a deliberate exclusion. detail is optional human
// context (policy detail, sniffed type, human-readable size).
func SkipResult(origin string, reason SkipReason, detail string) Result {
	return Result{Origin: origin, Status: StatusSkipped, Reason: reason, Detail: detail}
}

// FailResult builds a failed capture.
func FailResult(origin, detail string) Result {
	return Result{Origin: origin, Status: StatusFailed, Detail: detail}
}

// Collector gathers one source of diagnostic content.
//
// Collect never returns an error and must not panic across its boundary:
// every outcome, including failure, is expressed as the returned Result so
// a single broken source can never abort a report run. The context bounds
// execution time; collectors that outlive it report a Failed result.
type Collector interface {
	// Origin names the source in report output, e.g. "ip addr" or
	// "~/.config/hypr/hyprland.conf".
	Origin() string

	// Kind identifies the collector variant.
	Kind() Kind

	// Collect gathers the source and returns exactly one Result.
	Collect(ctx context.Context) Result
}
