/*
Copyright © 2026 Sysnap Authors
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	snaperrors "github.com/sysnap-io/sysnap/pkg/errors"
)

func TestStripProtocol(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "https prefix",
			input:    "https://ghcr.io",
			expected: "ghcr.io",
		},
		{
			name:     "http prefix",
			input:    "http://localhost:5000",
			expected: "localhost:5000",
		},
		{
			name:     "no prefix",
			input:    "registry.example.com",
			expected: "registry.example.com",
		},
		{
			name:     "with port no prefix",
			input:    "localhost:5000",
			expected: "localhost:5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripProtocol(tt.input)
			if got != tt.expected {
				t.Errorf("stripProtocol(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPush_EmptyTag(t *testing.T) {
	_, err := Push(context.Background(), PushOptions{
		SourceDir:  "/nonexistent",
		Registry:   "localhost:5000",
		Repository: "test/repo",
		Tag:        "",
	})

	if err == nil {
		t.Fatal("Push() expected error for empty tag, got nil")
	}

	var se *snaperrors.StructuredError
	if !errors.As(err, &se) || se.Code != snaperrors.ErrCodeInvalidRequest {
		t.Errorf("Push() error = %v, want INVALID_REQUEST", err)
	}
}

func TestPush_InvalidReference(t *testing.T) {
	_, err := Push(context.Background(), PushOptions{
		SourceDir:  "/nonexistent",
		Registry:   "invalid registry with spaces",
		Repository: "test/repo",
		Tag:        "v1.0.0",
	})

	if err == nil {
		t.Error("Push() expected error for invalid registry, got nil")
	}
}

func TestPushOptions_Defaults(t *testing.T) {
	opts := PushOptions{
		SourceDir:  "/tmp/test",
		Registry:   "ghcr.io",
		Repository: "acme/support",
		Tag:        "v1.0.0",
	}

	// Verify defaults
	if opts.PlainHTTP != false {
		t.Error("PlainHTTP should default to false")
	}
	if opts.InsecureTLS != false {
		t.Error("InsecureTLS should default to false")
	}
	if opts.Annotations != nil {
		t.Error("Annotations should default to nil")
	}
}

func TestPushResult_Fields(t *testing.T) {
	result := PushResult{
		Digest:    "sha256:abc123",
		Reference: "ghcr.io/acme/support:v1.0.0",
	}

	if result.Digest != "sha256:abc123" {
		t.Errorf("Digest = %q, want %q", result.Digest, "sha256:abc123")
	}
	if result.Reference != "ghcr.io/acme/support:v1.0.0" {
		t.Errorf("Reference = %q, want %q", result.Reference, "ghcr.io/acme/support:v1.0.0")
	}
}

func TestResolveSource(t *testing.T) {
	t.Run("file resolves to parent directory", func(t *testing.T) {
		dir := t.TempDir()
		reportPath := filepath.Join(dir, "report.txt")
		if err := os.WriteFile(reportPath, []byte("report"), 0o600); err != nil {
			t.Fatal(err)
		}

		got, err := ResolveSource(reportPath)
		if err != nil {
			t.Fatalf("ResolveSource failed: %v", err)
		}
		if got != dir {
			t.Errorf("ResolveSource(%q) = %q, want %q", reportPath, got, dir)
		}
	})

	t.Run("directory resolves to itself", func(t *testing.T) {
		dir := t.TempDir()

		got, err := ResolveSource(dir)
		if err != nil {
			t.Fatalf("ResolveSource failed: %v", err)
		}
		if got != dir {
			t.Errorf("ResolveSource(%q) = %q, want %q", dir, got, dir)
		}
	})

	t.Run("missing source returns NOT_FOUND", func(t *testing.T) {
		_, err := ResolveSource("/nonexistent/report.txt")
		if err == nil {
			t.Fatal("Expected error for missing source")
		}

		var se *snaperrors.StructuredError
		if !errors.As(err, &se) || se.Code != snaperrors.ErrCodeNotFound {
			t.Errorf("ResolveSource error = %v, want NOT_FOUND", err)
		}
	})
}

func TestArtifactType(t *testing.T) {
	// The artifact type is part of the wire contract with registries;
	// changing it orphans previously pushed reports.
	if ArtifactType != "application/vnd.sysnap.report" {
		t.Errorf("ArtifactType = %q, want %q", ArtifactType, "application/vnd.sysnap.report")
	}
}
