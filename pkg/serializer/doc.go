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

// Package serializer provides encoding and decoding of structured sysnap
// data such as run summaries and section manifests.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, compact representation
//   - Suitable for programmatic consumption
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - Suitable for configuration files and version control
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Flattened key/value text representation
//   - Suitable for terminal/console viewing
//   - Write-only (no deserialization support)
//
// # Usage - Encoding
//
// Write to stdout:
//
//	w := serializer.NewStdoutWriter(serializer.FormatYAML)
//	if err := w.Serialize(ctx, summary); err != nil {
//	    log.Fatal(err)
//	}
//
// Write to a file, falling back to stdout when the path is empty or
// cannot be created:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatJSON, path)
//	defer w.(serializer.Closer).Close()
//
// # Usage - Decoding
//
// Load a manifest from a file path or HTTP(S) URL in one call:
//
//	m, err := serializer.FromFile[manifest.SectionManifest]("sections.yaml")
//
// Or drive the Reader directly:
//
//	r, err := serializer.NewFileReaderAuto("sections.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	var m manifest.SectionManifest
//	err = r.Deserialize(&m)
//
// # Format Detection
//
// File extension-based detection:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → JSON (default)
//
// # Integration
//
// Used throughout sysnap for data I/O:
//   - pkg/cli - run summary and sections output
//   - pkg/manifest - section manifest loading
package serializer
