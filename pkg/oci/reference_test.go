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

package oci

import (
	"testing"
)

func TestValidateRegistryReference(t *testing.T) {
	tests := []struct {
		name       string
		registry   string
		repository string
		wantErr    bool
	}{
		{
			name:       "valid ghcr.io",
			registry:   "ghcr.io",
			repository: "acme/support",
			wantErr:    false,
		},
		{
			name:       "valid localhost with port",
			registry:   "localhost:5000",
			repository: "test/repo",
			wantErr:    false,
		},
		{
			name:       "valid with https prefix",
			registry:   "https://ghcr.io",
			repository: "acme/support",
			wantErr:    false,
		},
		{
			name:       "valid complex repository",
			registry:   "registry.example.com:5000",
			repository: "org/team/project",
			wantErr:    false,
		},
		{
			name:       "invalid registry with spaces",
			registry:   "invalid registry",
			repository: "test/repo",
			wantErr:    true,
		},
		{
			name:       "invalid repository with uppercase",
			registry:   "ghcr.io",
			repository: "ACME/Support",
			wantErr:    true,
		},
		{
			name:       "invalid repository with special chars",
			registry:   "ghcr.io",
			repository: "test/repo@latest",
			wantErr:    true,
		},
		{
			name:       "bare hostname normalizes away",
			registry:   "myregistry",
			repository: "test/repo",
			wantErr:    true,
		},
		{
			name:       "empty registry",
			registry:   "",
			repository: "test/repo",
			wantErr:    true,
		},
		{
			name:       "empty repository",
			registry:   "ghcr.io",
			repository: "",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistryReference(tt.registry, tt.repository)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegistryReference() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatReference(t *testing.T) {
	tests := []struct {
		name       string
		registry   string
		repository string
		tag        string
		expected   string
	}{
		{
			name:       "full reference",
			registry:   "ghcr.io",
			repository: "acme/support",
			tag:        "v1.0.0",
			expected:   "ghcr.io/acme/support:v1.0.0",
		},
		{
			name:       "strips protocol",
			registry:   "https://ghcr.io",
			repository: "acme/support",
			tag:        "latest",
			expected:   "ghcr.io/acme/support:latest",
		},
		{
			name:       "no tag",
			registry:   "localhost:5000",
			repository: "test/repo",
			tag:        "",
			expected:   "localhost:5000/test/repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatReference(tt.registry, tt.repository, tt.tag)
			if got != tt.expected {
				t.Errorf("FormatReference() = %q, want %q", got, tt.expected)
			}
		})
	}
}
