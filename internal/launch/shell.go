// Package launch provides the two Launcher implementations named in
// SPEC_FULL.md's 4.F launchServer: a bare-metal ShellLauncher that spawns a
// local process, and a KubernetesLauncher that creates a custom-resource
// object for an operator to reconcile.
package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/mineplex-ops/fleet-scheduler/internal/config"
	"github.com/mineplex-ops/fleet-scheduler/internal/dedicated"
	"github.com/mineplex-ops/fleet-scheduler/internal/logging"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
)

// ShellLauncher starts a server process directly on the node it runs on,
// using the node's configured scripts/worlds/config paths. It assumes it is
// itself running on the target node (a per-node agent), not dispatching
// across the network.
type ShellLauncher struct {
	Monitor config.MonitorInfo
	Logger  logging.Logger
}

// Start spawns the group's jar in its own session so it survives the
// launcher's own process exiting.
func (l *ShellLauncher) Start(ctx context.Context, node *dedicated.DedicatedServer, group *servergroup.ServerGroup, inst *dedicated.MCSInstance) error {
	worldDir := filepath.Join(l.Monitor.WorldsPath, inst.Name)
	jar := filepath.Join(l.Monitor.ScriptsPath, group.Plugin)

	cmd := exec.CommandContext(ctx, "java", "-jar", jar, "--nogui")
	cmd.Dir = worldDir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("SERVER_NAME=%s", inst.Name),
		fmt.Sprintf("SERVER_GROUP=%s", group.Name),
		fmt.Sprintf("SERVER_PORT=%d", inst.Port),
	)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch: starting %s: %w", inst.Name, err)
	}
	l.Logger.Info(ctx, "started shell instance",
		logging.String("instance", inst.Name),
		logging.String("group", group.Name),
		logging.Int("pid", cmd.Process.Pid),
	)
	return nil
}
