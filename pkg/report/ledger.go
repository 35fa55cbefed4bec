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

package report

import "github.com/sysnap-io/sysnap/pkg/collector"

// FailureRecord captures one collector failure for the trailing summary
// section. It carries the section and origin so a reader can find the
// inline failure marker without searching the whole artifact.
type FailureRecord struct {
	Section string
	Origin  string
	Detail  string
}

// Ledger accumulates failures and skip tallies during a run. Collectors
// run strictly one at a time, so the ledger needs no locking.
type Ledger struct {
	failures   []FailureRecord
	skips      int
	permission int
}

// RecordFailure adds a failure entry for the trailing summary section.
func (l *Ledger) RecordFailure(section, origin, detail string) {
	l.failures = append(l.failures, FailureRecord{
		Section: section,
		Origin:  origin,
		Detail:  detail,
	})
}

// RecordSkip tallies a skipped source. Permission denials are counted
// separately so the final console line can point the user at them.
func (l *Ledger) RecordSkip(reason collector.SkipReason) {
	l.skips++
	if reason == collector.SkipPermission {
		l.permission++
	}
}

// Failures returns the recorded failures in the order they occurred.
func (l *Ledger) Failures() []FailureRecord {
	out := make([]FailureRecord, len(l.failures))
	copy(out, l.failures)
	return out
}

// FailureCount reports the number of recorded failures.
func (l *Ledger) FailureCount() int {
	return len(l.failures)
}

// SkipCount reports the number of skipped sources.
func (l *Ledger) SkipCount() int {
	return l.skips
}

// PermissionCount reports how many skips were permission denials.
func (l *Ledger) PermissionCount() int {
	return l.permission
}
