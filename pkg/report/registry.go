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

// Section is one titled group of collectors. Sections render in the
// order they were registered, and the table of contents is derived from
// that same order, so a section's number never shifts between the TOC
// and its body.
type Section struct {
	// Title names the section in the TOC and its header.
	Title string

	// Purpose is a one-line description rendered under the header.
	Purpose string

	// Collectors run strictly in declaration order.
	Collectors []collector.Collector
}

// Registry holds the ordered section list for one report.
type Registry struct {
	sections []Section
}

// NewRegistry creates a registry with the given sections in order.
func NewRegistry(sections ...Section) *Registry {
	return &Registry{sections: sections}
}

// Add appends a section after the existing ones.
func (r *Registry) Add(s Section) {
	r.sections = append(r.sections, s)
}

// Sections returns the registered sections in registration order. The
// returned slice is a copy; mutating it does not affect the registry.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// Len reports the number of registered sections.
func (r *Registry) Len() int {
	return len(r.sections)
}

// CollectorCount reports the total number of collectors across all
// sections.
func (r *Registry) CollectorCount() int {
	n := 0
	for _, s := range r.sections {
		n += len(s.Collectors)
	}
	return n
}
