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

import (
	"testing"

	"github.com/sysnap-io/sysnap/pkg/collector"
)

func TestLedgerFailureOrder(t *testing.T) {
	t.Parallel()

	led := &Ledger{}
	led.RecordFailure("Network", "ip addr", "exec failed")
	led.RecordFailure("Logs", "journalctl", "exit 1")
	led.RecordFailure("Network", "nmcli", "not found")

	failures := led.Failures()
	if len(failures) != 3 {
		t.Fatalf("Failures() returned %d, want 3", len(failures))
	}

	wantOrigins := []string{"ip addr", "journalctl", "nmcli"}
	for i, origin := range wantOrigins {
		if failures[i].Origin != origin {
			t.Errorf("failure %d origin = %q, want %q", i, failures[i].Origin, origin)
		}
	}

	if failures[0].Section != "Network" {
		t.Errorf("failure 0 section = %q, want Network", failures[0].Section)
	}
	if led.FailureCount() != 3 {
		t.Errorf("FailureCount() = %d, want 3", led.FailureCount())
	}
}

func TestLedgerSkipTallies(t *testing.T) {
	t.Parallel()

	led := &Ledger{}
	led.RecordSkip(collector.SkipNotFound)
	led.RecordSkip(collector.SkipPermission)
	led.RecordSkip(collector.SkipPermission)
	led.RecordSkip(collector.SkipBinary)

	if led.SkipCount() != 4 {
		t.Errorf("SkipCount() = %d, want 4", led.SkipCount())
	}
	if led.PermissionCount() != 2 {
		t.Errorf("PermissionCount() = %d, want 2", led.PermissionCount())
	}
	if led.FailureCount() != 0 {
		t.Errorf("FailureCount() = %d, want 0; skips must not count as failures", led.FailureCount())
	}
}

func TestLedgerFailuresIsCopy(t *testing.T) {
	t.Parallel()

	led := &Ledger{}
	led.RecordFailure("Storage", "df -h", "boom")

	got := led.Failures()
	got[0].Origin = "mutated"

	if led.Failures()[0].Origin != "df -h" {
		t.Error("mutating the returned slice changed the ledger")
	}
}

func TestLedgerEmpty(t *testing.T) {
	t.Parallel()

	led := &Ledger{}

	if led.FailureCount() != 0 || led.SkipCount() != 0 || led.PermissionCount() != 0 {
		t.Error("zero-value ledger must report zero counts")
	}
	if got := led.Failures(); len(got) != 0 {
		t.Errorf("Failures() = %v, want empty", got)
	}
}
