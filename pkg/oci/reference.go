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
	"fmt"

	"github.com/distribution/reference"

	snaperrors "github.com/sysnap-io/sysnap/pkg/errors"
)

// ValidateRegistryReference checks that registry and repository form a
// valid image reference before any network call is made. The registry
// may carry an http:// or https:// prefix, which is ignored.
//
// The check also guards against reference normalization silently
// retargeting the push: a bare hostname like "myregistry" would
// otherwise normalize to a docker.io path component.
func ValidateRegistryReference(registry, repository string) error {
	host := stripProtocol(registry)
	if host == "" {
		return snaperrors.New(snaperrors.ErrCodeInvalidRequest, "registry is required")
	}
	if repository == "" {
		return snaperrors.New(snaperrors.ErrCodeInvalidRequest, "repository is required")
	}

	refString := fmt.Sprintf("%s/%s", host, repository)
	ref, err := reference.ParseNormalizedNamed(refString)
	if err != nil {
		return snaperrors.Wrap(snaperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid image reference %q", refString), err)
	}

	if reference.Domain(ref) != host {
		return snaperrors.New(snaperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("registry %q is not a valid registry host (did you mean %q?)",
				host, reference.Domain(ref)))
	}
	if reference.Path(ref) != repository {
		return snaperrors.New(snaperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("repository %q normalizes to %q; use the normalized form",
				repository, reference.Path(ref)))
	}

	return nil
}

// FormatReference builds the full image reference string
// (registry/repository:tag) with any protocol prefix stripped.
func FormatReference(registry, repository, tag string) string {
	host := stripProtocol(registry)
	if tag == "" {
		return fmt.Sprintf("%s/%s", host, repository)
	}
	return fmt.Sprintf("%s/%s:%s", host, repository, tag)
}
