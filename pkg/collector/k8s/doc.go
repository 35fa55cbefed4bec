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

// Package k8s captures Kubernetes cluster inventory for the optional
// cluster section of a snapshot.
//
// # Collected Data
//
// The collector captures:
//   - API server version, platform, and Go toolchain
//   - Release series parsed from the semantic server version
//   - Per-node inventory: roles, kubelet version, container runtime,
//     OS image, and the managed-platform name (eks, gke, aks, oke)
//     derived from the node's provider ID
//
// # Kubeconfig Resolution
//
// An explicit path wins; otherwise the KUBECONFIG environment variable,
// then ~/.kube/config, and finally the in-cluster service account. The
// built client is a process-wide singleton so repeated collections reuse
// one connection.
//
// # Outcome Mapping
//
// Most desktop hosts have no cluster, so absence is an expected outcome
// rather than an error:
//   - no kubeconfig or unreachable API server: skipped (not found)
//   - rejected or insufficient credentials: skipped (permission denied)
//   - errors after the server has answered: failed
//
// # Usage
//
//	c := k8s.NewClusterCollector(k8s.WithKubeconfig(path))
//	res := c.Collect(ctx)
//	if res.Status == collector.StatusText {
//	    fmt.Println(res.Body)
//	}
package k8s
