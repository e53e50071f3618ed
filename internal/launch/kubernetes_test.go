package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"

	"github.com/mineplex-ops/fleet-scheduler/internal/dedicated"
	"github.com/mineplex-ops/fleet-scheduler/internal/logging"
	"github.com/mineplex-ops/fleet-scheduler/internal/region"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
)

func TestKubernetesLauncher_Start_CreatesCustomResource(t *testing.T) {
	scheme := runtime.NewScheme()
	listKinds := map[schema.GroupVersionResource]string{
		MinecraftServerGVR: "MinecraftServerList",
	}
	dynamicClient := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme, listKinds)

	launcher := &KubernetesLauncher{Dynamic: dynamicClient, Namespace: "fleet", Logger: logging.NewLogger("test")}

	node := &dedicated.DedicatedServer{Name: "node-1", Region: region.US}
	group := &servergroup.ServerGroup{Name: "MIN", Prefix: "MIN", WorldZip: "arcade.zip", Plugin: "Arcade.jar", ConfigPath: "plugins/Arcade", RAM: 512, CPU: 1, Region: region.US}
	inst := dedicated.NewMCSInstance("MIN-1", "MIN", 25566, region.US, nil)

	err := launcher.Start(t.Context(), node, group, inst)
	require.NoError(t, err)

	obj, err := dynamicClient.Resource(MinecraftServerGVR).Namespace("fleet").Get(t.Context(), "MIN-1", metav1.GetOptions{})
	require.NoError(t, err)
	spec, ok := obj.Object["spec"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "node-1", spec["node"])
	assert.Equal(t, "MIN", spec["group"])
}

func TestKubernetesLauncher_Start_FailsOnDuplicateCreate(t *testing.T) {
	scheme := runtime.NewScheme()
	listKinds := map[schema.GroupVersionResource]string{
		MinecraftServerGVR: "MinecraftServerList",
	}
	dynamicClient := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme, listKinds)
	launcher := &KubernetesLauncher{Dynamic: dynamicClient, Namespace: "fleet", Logger: logging.NewLogger("test")}

	node := &dedicated.DedicatedServer{Name: "node-1", Region: region.US}
	group := &servergroup.ServerGroup{Name: "MIN", Prefix: "MIN", WorldZip: "arcade.zip", Plugin: "Arcade.jar", ConfigPath: "plugins/Arcade", Region: region.US}
	inst := dedicated.NewMCSInstance("MIN-1", "MIN", 25566, region.US, nil)

	require.NoError(t, launcher.Start(t.Context(), node, group, inst))
	err := launcher.Start(t.Context(), node, group, inst)
	assert.Error(t, err)
}
