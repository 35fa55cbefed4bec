// Package oci provides functionality for pushing report artifacts to OCI-compliant registries.
//
// This package enables diagnostic reports to be pushed to any OCI-compliant registry
// (Docker Hub, GHCR, ECR, local registries, etc.) using the ORAS (OCI Registry As Storage)
// library, so a report can be handed to another system the same way an image would be.
//
// # Overview
//
// The package provides one main operation:
//   - Push: packages a directory as a single gzipped layer and pushes it to a registry
//
// Supporting helpers resolve the publish source (ResolveSource) and validate
// the target reference before any network call (ValidateRegistryReference).
//
// # Core Types
//
//   - PushOptions: configuration for pushing to remote registries
//   - PushResult: result of a successful push (digest, reference)
//
// # Usage
//
//	dir, err := oci.ResolveSource("/home/user/.local/share/sysnap/report.txt")
//	if err != nil {
//	    return err
//	}
//
//	result, err := oci.Push(ctx, oci.PushOptions{
//	    SourceDir:  dir,
//	    Registry:   "ghcr.io",
//	    Repository: "acme/support",
//	    Tag:        "host-0142",
//	})
//
// # Configuration
//
// PushOptions supports several configuration options:
//   - PlainHTTP: use HTTP instead of HTTPS (for local development registries)
//   - InsecureTLS: skip TLS certificate verification
//   - Annotations: extra manifest annotations (e.g., report ID, tool version)
//
// # Authentication
//
// The package automatically uses Docker credential helpers for authentication.
// Credentials are loaded from the standard Docker configuration (~/.docker/config.json)
// using the ORAS credentials package.
//
// # Artifact Type
//
// Artifacts are pushed with the media type "application/vnd.sysnap.report".
// This custom media type identifies sysnap reports and distinguishes them from
// runnable container images. Consumers that don't understand this type should
// treat the artifact as a non-executable blob.
package oci
