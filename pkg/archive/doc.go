/*
Copyright © 2026 Sysnap Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package archive rotates reports written to the fixed automatic-mode
// location.
//
// In automatic mode every run writes to the same report.txt under the
// XDG data home. Before the new run starts, the previous artifact is
// moved aside to report-<UTC stamp>.txt, archives beyond the retention
// count are pruned oldest first, and a sha256sum-compatible
// checksums.txt covering the surviving archives is refreshed.
//
// Archive names carry a fixed-width UTC timestamp so lexicographic
// order equals chronological order; pruning is independent of file
// modification times.
//
// Usage:
//
//	rot := archive.NewRotator(archive.DefaultDir(), archive.DefaultKeep)
//	res, err := rot.Rotate(ctx)
//	if err != nil {
//	    return err
//	}
//	if res.Archived != "" {
//	    slog.Info("previous report archived", "path", res.Archived)
//	}
package archive
