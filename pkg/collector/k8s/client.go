package k8s

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/sysnap-io/sysnap/pkg/defaults"
)

// ErrNoCluster marks a host with no kubeconfig and no in-cluster service
// account, i.e. there is simply no cluster to inspect.
var ErrNoCluster = errors.New("no kubeconfig found and not running in a cluster")

var (
	clientOnce   sync.Once
	cachedClient *kubernetes.Clientset
	cachedConfig *rest.Config
	clientErr    error
)

// GetClient returns a singleton Kubernetes client, creating it on first
// call. Subsequent calls return the cached client regardless of the
// kubeconfig argument, which keeps connection reuse and avoids repeated
// API server handshakes within one snapshot run.
func GetClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	clientOnce.Do(func() {
		cachedClient, cachedConfig, clientErr = buildClient(kubeconfig)
	})
	return cachedClient, cachedConfig, clientErr
}

// buildClient creates a Kubernetes client from the given kubeconfig file.
// An empty argument falls back to the KUBECONFIG environment variable and
// then to the default file in the user's home directory; when none of
// those exist the in-cluster service account is the last resort.
func buildClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	path := resolveKubeconfig(kubeconfig)

	var (
		config *rest.Config
		err    error
	)
	if path == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, ErrNoCluster
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}

	// Bound every API request so an unreachable API server degrades
	// into a section failure instead of hanging the run.
	config.Timeout = defaults.K8sClientTimeout

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}

func resolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}
