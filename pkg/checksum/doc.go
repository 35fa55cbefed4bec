/*
Copyright © 2026 Sysnap Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package checksum provides SHA-256 digest generation for report artifacts.
//
// Used by the report archiver to maintain a checksums.txt manifest next to
// archived reports, and by the publish path to log the digest of what was
// pushed.
//
// Usage:
//
//	sum, err := checksum.File("/path/to/report.txt")
//	if err != nil {
//	    return err
//	}
//
//	err = checksum.WriteManifest(ctx, archiveDir, fileList)
//	if err != nil {
//	    return err
//	}
//
// The checksums.txt file format is compatible with sha256sum:
//
//	sha256sum -c checksums.txt
package checksum
