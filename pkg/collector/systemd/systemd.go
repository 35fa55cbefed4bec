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

package systemd

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/sysnap-io/sysnap/pkg/collector"
	"github.com/sysnap-io/sysnap/pkg/policy"
)

// defaultUnits is the desktop-oriented unit set inspected when the
// caller does not name any.
var defaultUnits = []string{
	"NetworkManager.service",
	"systemd-resolved.service",
	"systemd-timesyncd.service",
	"bluetooth.service",
	"power-profiles-daemon.service",
}

// defaultUnitProperties is the ordered property subset rendered per
// unit. The full property dump runs to hundreds of keys per unit and is
// mostly noise in a report.
var defaultUnitProperties = []string{
	"Description",
	"LoadState",
	"ActiveState",
	"SubState",
	"UnitFileState",
	"FragmentPath",
	"ActiveEnterTimestamp",
	"MainPID",
	"ExecMainStatus",
	"NRestarts",
	"MemoryCurrent",
	"TasksCurrent",
}

// filterOutKeys removes credential-bearing property names even when a
// caller-supplied property list asks for them.
var filterOutKeys = []string{
	"*Credential*",
	"*Password*",
	"*Secret*",
}

// dbus reports unset numeric properties as the maximum uint64.
const unsetUint64 = ^uint64(0)

// UnitsCollector captures a property subset for a fixed set of systemd
// units over the D-Bus API.
type UnitsCollector struct {
	units []string
	props []string
}

// UnitsOption configures a UnitsCollector.
type UnitsOption func(*UnitsCollector)

// WithUnitProperties replaces the rendered property subset. Credential
// style keys are still filtered out of whatever list is supplied.
func WithUnitProperties(keys []string) UnitsOption {
	return func(c *UnitsCollector) {
		if len(keys) > 0 {
			c.props = keys
		}
	}
}

// NewUnitsCollector creates a collector for the named units. An empty
// list selects the default desktop set.
func NewUnitsCollector(units []string, opts ...UnitsOption) *UnitsCollector {
	if len(units) == 0 {
		units = defaultUnits
	}
	c := &UnitsCollector{
		units: units,
		props: defaultUnitProperties,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origin returns the rendered label for the unit overview.
func (c *UnitsCollector) Origin() string {
	return "systemd units"
}

// Kind returns KindService.
func (c *UnitsCollector) Kind() collector.Kind {
	return collector.KindService
}

// Collect queries each unit and renders its property subset. A broken
// D-Bus connection fails the collector; a single unreadable unit only
// annotates its own block.
func (c *UnitsCollector) Collect(ctx context.Context) collector.Result {
	if err := ctx.Err(); err != nil {
		return collector.FailResult(c.Origin(), err.Error())
	}

	conn, err := connect(ctx)
	if err != nil {
		return collector.FailResult(c.Origin(), "cannot reach systemd over D-Bus: "+err.Error())
	}
	defer conn.Close()

	var b strings.Builder
	for i, unit := range c.units {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(unit + "\n")

		props, err := conn.GetAllPropertiesContext(ctx, unit)
		if err != nil {
			fmt.Fprintf(&b, "  could not read unit: %v\n", err)
			continue
		}
		for _, line := range c.propertyLines(props) {
			b.WriteString("  " + line + "\n")
		}
	}

	slog.Debug("systemd units captured", slog.Int("units", len(c.units)))
	return collector.TextResult(c.Origin(), strings.TrimRight(b.String(), "\n"))
}

// propertyLines renders the configured subset in declaration order so
// output is stable across runs.
func (c *UnitsCollector) propertyLines(props map[string]interface{}) []string {
	lines := make([]string, 0, len(c.props))
	for _, key := range c.props {
		if filteredKey(key) {
			continue
		}
		v, ok := props[key]
		if !ok {
			continue
		}
		lines = append(lines, key+"="+renderValue(v))
	}
	return lines
}

func filteredKey(key string) bool {
	for _, pattern := range filterOutKeys {
		if policy.Matches(key, pattern) {
			return true
		}
	}
	return false
}

func renderValue(v interface{}) string {
	if u, ok := v.(uint64); ok && u == unsetUint64 {
		return "[not set]"
	}
	return fmt.Sprintf("%v", v)
}

// FailedUnitsCollector lists every unit currently in the failed state.
type FailedUnitsCollector struct{}

// NewFailedUnitsCollector creates a failed-unit lister.
func NewFailedUnitsCollector() *FailedUnitsCollector {
	return &FailedUnitsCollector{}
}

// Origin returns the rendered label for the failed-unit list.
func (c *FailedUnitsCollector) Origin() string {
	return "systemd failed units"
}

// Kind returns KindService.
func (c *FailedUnitsCollector) Kind() collector.Kind {
	return collector.KindService
}

// Collect lists failed units sorted by name. A clean host renders an
// explicit "no failed units" line rather than an empty block.
func (c *FailedUnitsCollector) Collect(ctx context.Context) collector.Result {
	if err := ctx.Err(); err != nil {
		return collector.FailResult(c.Origin(), err.Error())
	}

	conn, err := connect(ctx)
	if err != nil {
		return collector.FailResult(c.Origin(), "cannot reach systemd over D-Bus: "+err.Error())
	}
	defer conn.Close()

	units, err := conn.ListUnitsFilteredContext(ctx, []string{"failed"})
	if err != nil {
		return collector.FailResult(c.Origin(), "listing failed units: "+err.Error())
	}
	if len(units) == 0 {
		return collector.TextResult(c.Origin(), "No failed units.")
	}

	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	var b strings.Builder
	for _, u := range units {
		fmt.Fprintf(&b, "%s  %s/%s  %s\n", u.Name, u.ActiveState, u.SubState, u.Description)
	}
	return collector.TextResult(c.Origin(), strings.TrimRight(b.String(), "\n"))
}

// connect prefers the private systemd socket, which needs privileges,
// and falls back to the regular bus for unprivileged runs.
func connect(ctx context.Context) (*dbus.Conn, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err == nil {
		return conn, nil
	}
	slog.Debug("private systemd socket unavailable, trying bus",
		slog.String("error", err.Error()))
	return dbus.NewWithContext(ctx)
}
