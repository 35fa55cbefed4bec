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

// Package systemd captures service state over the systemd D-Bus API.
//
// Two collectors live here. UnitsCollector renders a curated property
// subset for a fixed list of units; FailedUnitsCollector lists every
// unit currently in the failed state so a broken service is visible even
// when nobody thought to name it.
//
// # Collected Data
//
// For each configured unit, the collector captures:
//   - Unit state (LoadState, ActiveState, SubState)
//   - Startup configuration (UnitFileState, FragmentPath)
//   - Process details (MainPID, ExecMainStatus, NRestarts)
//   - Resource usage (MemoryCurrent, TasksCurrent)
//
// Credential-style property names are filtered out even when a caller
// supplies its own property list.
//
// # Usage
//
//	c := systemd.NewUnitsCollector([]string{
//	    "NetworkManager.service",
//	    "bluetooth.service",
//	})
//
//	res := c.Collect(ctx)
//	if res.Status == collector.StatusText {
//	    fmt.Println(res.Body)
//	}
//
// # Connection Handling
//
// The collector prefers the private systemd socket and falls back to the
// regular bus, so it works both for root and for an ordinary desktop
// user. When neither is reachable the collector returns a Failed result;
// the snapshot run itself carries on.
package systemd
