package k8s

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/utils/ptr"

	"github.com/sysnap-io/sysnap/pkg/collector"
	"github.com/sysnap-io/sysnap/pkg/version"
)

// nodeListTimeoutSeconds bounds the node list call on the server side.
const nodeListTimeoutSeconds = 30

const nodeRoleLabelPrefix = "node-role.kubernetes.io/"

// ClusterCollector captures the API server version and a node inventory
// for whatever cluster the local kubeconfig points at. It is opt-in: most
// desktop hosts have no cluster, which renders as a skip rather than a
// failure.
type ClusterCollector struct {
	clientset  kubernetes.Interface
	kubeconfig string
}

// ClusterOption configures a ClusterCollector.
type ClusterOption func(*ClusterCollector)

// WithKubeconfig points the collector at an explicit kubeconfig file
// instead of the default resolution chain.
func WithKubeconfig(path string) ClusterOption {
	return func(c *ClusterCollector) {
		c.kubeconfig = path
	}
}

// WithClientset injects a pre-built clientset, bypassing kubeconfig
// resolution entirely.
func WithClientset(cs kubernetes.Interface) ClusterOption {
	return func(c *ClusterCollector) {
		c.clientset = cs
	}
}

// NewClusterCollector creates a cluster inventory collector.
func NewClusterCollector(opts ...ClusterOption) *ClusterCollector {
	c := &ClusterCollector{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origin returns the rendered label for the cluster inventory.
func (c *ClusterCollector) Origin() string {
	return "kubernetes cluster"
}

// Kind returns KindCluster.
func (c *ClusterCollector) Kind() collector.Kind {
	return collector.KindCluster
}

// Collect queries the server version and lists the nodes. An absent or
// unreachable cluster is a skip; denied credentials are a permission
// skip; errors after the server has answered once are real failures.
func (c *ClusterCollector) Collect(ctx context.Context) collector.Result {
	origin := c.Origin()

	if err := ctx.Err(); err != nil {
		return collector.FailResult(origin, err.Error())
	}

	cs, err := c.getClient()
	if err != nil {
		return skipForClusterError(origin, err)
	}

	sv, err := cs.Discovery().ServerVersion()
	if err != nil {
		return skipForClusterError(origin, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Server version: %s (%s, %s)\n", sv.GitVersion, sv.Platform, sv.GoVersion)
	if v, perr := version.ParseVersion(strings.TrimPrefix(sv.GitVersion, "v")); perr == nil {
		fmt.Fprintf(&b, "Release series: %d.%d\n", v.Major, v.Minor)
	}

	nodeCount := 0
	nodes, err := cs.CoreV1().Nodes().List(ctx, metav1.ListOptions{
		TimeoutSeconds: ptr.To(int64(nodeListTimeoutSeconds)),
	})
	switch {
	case apierrors.IsForbidden(err) || apierrors.IsUnauthorized(err):
		// Version was readable, so keep it and note the gap.
		b.WriteString("\nNodes: access denied\n")
	case err != nil:
		return collector.FailResult(origin, "listing nodes: "+err.Error())
	default:
		nodeCount = len(nodes.Items)
		b.WriteString("\nNodes:\n")
		writeNodeLines(&b, nodes.Items)
	}

	slog.Debug("cluster captured",
		slog.String("server", sv.GitVersion),
		slog.Int("nodes", nodeCount),
	)
	return collector.TextResult(origin, strings.TrimRight(b.String(), "\n"))
}

func (c *ClusterCollector) getClient() (kubernetes.Interface, error) {
	if c.clientset != nil {
		return c.clientset, nil
	}
	cs, _, err := GetClient(c.kubeconfig)
	if err != nil {
		return nil, err
	}
	return cs, nil
}

func writeNodeLines(b *strings.Builder, nodes []corev1.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	for _, n := range nodes {
		info := n.Status.NodeInfo
		fmt.Fprintf(b, "  %s  roles=%s  kubelet=%s  runtime=%s  os=%s",
			n.Name, nodeRoles(&n), info.KubeletVersion, info.ContainerRuntimeVersion, info.OSImage)
		if p := parseProvider(n.Spec.ProviderID); p != "" {
			fmt.Fprintf(b, "  provider=%s", p)
		}
		b.WriteString("\n")
	}
}

// nodeRoles renders the node-role labels, sorted for stable output.
func nodeRoles(node *corev1.Node) string {
	var roles []string
	for label := range node.Labels {
		if role := strings.TrimPrefix(label, nodeRoleLabelPrefix); role != label && role != "" {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		return "<none>"
	}
	sort.Strings(roles)
	return strings.Join(roles, ",")
}

// parseProvider extracts the managed-platform name from a providerID.
// Typical formats:
//   - aws:///us-west-2a/i-0123456789abcdef0 → "eks"
//   - gce://my-project/us-central1-a/node → "gke"
//   - azure:///subscriptions/.../virtualMachines/... → "aks"
//   - oci://... → "oke"
//
// Unrecognized prefixes pass through as-is.
func parseProvider(providerID string) string {
	if providerID == "" {
		return ""
	}
	parts := strings.SplitN(providerID, "://", 2)
	provider := strings.ToLower(strings.TrimSpace(parts[0]))
	switch provider {
	case "aws":
		return "eks"
	case "gce":
		return "gke"
	case "azure":
		return "aks"
	case "oci":
		return "oke"
	default:
		return provider
	}
}

// skipForClusterError maps connectivity and credential errors to skips:
// a host without a cluster is normal, not broken.
func skipForClusterError(origin string, err error) collector.Result {
	if apierrors.IsUnauthorized(err) || apierrors.IsForbidden(err) {
		return collector.SkipResult(origin, collector.SkipPermission, err.Error())
	}
	return collector.SkipResult(origin, collector.SkipNotFound, err.Error())
}
