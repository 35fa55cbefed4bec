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

package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ManifestName is the standard name for checksum manifest files.
const ManifestName = "checksums.txt"

// File returns the hex-encoded SHA-256 digest of the file at path.
// The file is streamed through the hash so report archives of any
// size digest in constant memory.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for checksum: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s for checksum: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteManifest creates a checksums.txt file in dir containing SHA-256
// digests for all provided files. Paths in the manifest are written
// relative to dir so the file verifies with `sha256sum -c` from there.
//
// Returns an error if the context is canceled, any file cannot be read,
// or the manifest cannot be written.
func WriteManifest(ctx context.Context, dir string, files []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	lines := make([]string, 0, len(files))

	for _, file := range files {
		sum, err := File(file)
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(dir, file)
		if err != nil {
			// If relative path fails, use absolute path
			relPath = file
		}

		lines = append(lines, fmt.Sprintf("%s  %s", sum, relPath))
	}

	manifestPath := filepath.Join(dir, ManifestName)
	content := strings.Join(lines, "\n") + "\n"

	if err := os.WriteFile(manifestPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write checksums: %w", err)
	}

	slog.Debug("checksum manifest written",
		"file_count", len(lines),
		"path", manifestPath,
	)

	return nil
}

// ManifestPath returns the full path to the checksums.txt file in the
// given directory.
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestName)
}
