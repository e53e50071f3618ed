package launch

import (
	"context"
	"fmt"
	"os"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/mineplex-ops/fleet-scheduler/internal/dedicated"
	"github.com/mineplex-ops/fleet-scheduler/internal/logging"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
)

// MinecraftServerGVR is the GroupVersionResource of the operator-managed
// MinecraftServer custom resource a KubernetesLauncher creates.
var MinecraftServerGVR = schema.GroupVersionResource{
	Group:    "fleet.mineplex.ops",
	Version:  "v1",
	Resource: "minecraftservers",
}

// KubernetesLauncher starts a server instance by creating a MinecraftServer
// custom resource for an in-cluster operator to reconcile into a pod. It
// never waits on the operator itself — LaunchServer's own heartbeat polling
// is what decides whether the instance actually came up.
type KubernetesLauncher struct {
	Dynamic   dynamic.Interface
	Namespace string
	Logger    logging.Logger
}

// NewKubernetesLauncherFromEnv builds a KubernetesLauncher, preferring an
// out-of-cluster kubeconfig (KUBECONFIG) for development and falling back
// to the in-cluster service account, matching Terkea's
// kubernetes.NewClient.
func NewKubernetesLauncherFromEnv(logger logging.Logger) (*KubernetesLauncher, error) {
	var config *rest.Config
	var err error
	if kubeconfig := os.Getenv("KUBECONFIG"); kubeconfig != "" {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	} else {
		config, err = rest.InClusterConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("launch: building kubernetes config: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("launch: building dynamic client: %w", err)
	}

	namespace := os.Getenv("KUBERNETES_NAMESPACE")
	if namespace == "" {
		namespace = "default"
	}
	return &KubernetesLauncher{Dynamic: dynamicClient, Namespace: namespace, Logger: logger}, nil
}

// Start creates the custom resource for inst. It is idempotent enough for
// retries: a second Create against an already-running instance fails with
// AlreadyExists, which the caller can treat as success.
func (l *KubernetesLauncher) Start(ctx context.Context, node *dedicated.DedicatedServer, group *servergroup.ServerGroup, inst *dedicated.MCSInstance) error {
	obj := &unstructured.Unstructured{
		Object: map[string]interface{}{
			"apiVersion": "fleet.mineplex.ops/v1",
			"kind":       "MinecraftServer",
			"metadata": map[string]interface{}{
				"name":      inst.Name,
				"namespace": l.Namespace,
			},
			"spec": map[string]interface{}{
				"node":        node.Name,
				"group":       group.Name,
				"prefix":      group.Prefix,
				"worldZip":    group.WorldZip,
				"plugin":      group.Plugin,
				"configPath":  group.ConfigPath,
				"port":        int64(inst.Port),
				"ramMB":       int64(group.RAM),
				"cpuCores":    int64(group.CPU),
				"region":      string(group.Region),
				"whitelisted": group.Whitelist,
			},
		},
	}

	_, err := l.Dynamic.Resource(MinecraftServerGVR).Namespace(l.Namespace).Create(ctx, obj, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("launch: creating MinecraftServer %s: %w", inst.Name, err)
	}
	l.Logger.Info(ctx, "created MinecraftServer custom resource",
		logging.String("instance", inst.Name),
		logging.String("node", node.Name),
		logging.String("group", group.Name),
	)
	return nil
}
