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

// Package header provides common header types for sysnap data structures.
//
// This package defines the Header type used by run summaries and section
// manifests to provide consistent metadata and versioning information.
//
// # Header Structure
//
// The Header contains standard fields for API versioning and metadata:
//
//	type Header struct {
//	    Kind       Kind              // Resource type (e.g., "RunSummary")
//	    APIVersion string            // Schema version (e.g., "sysnap.dev/v1")
//	    Metadata   map[string]string // timestamp, version, custom keys
//	}
//
// # Usage
//
// Initialize a header for a run summary:
//
//	var h header.Header
//	h.Init(header.KindRunSummary, "sysnap.dev/v1", version)
//
// The Init call stamps Metadata["timestamp"] with the current UTC time in
// RFC3339 format and records the tool version under Metadata["version"].
//
// # Serialization
//
// Headers serialize consistently to JSON and YAML:
//
//	kind: RunSummary
//	apiVersion: sysnap.dev/v1
//	metadata:
//	  timestamp: "2026-01-15T10:30:00Z"
//	  version: v1.0.0
//
// Consumers should verify APIVersion before parsing and reject unrecognized
// kinds via Kind.IsValid.
package header
