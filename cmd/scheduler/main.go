// Command scheduler loads config.toml, connects to the shared cache, and
// serves the fleet's admin/dispatch HTTP surface. Bootstrap logging uses
// the stdlib log package before the structured logger is wired up, the
// same way the teacher's cmd/api-server/main.go does before its own
// services come online.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mineplex-ops/fleet-scheduler/internal/dedicated"
	"github.com/mineplex-ops/fleet-scheduler/internal/eventstream"
	"github.com/mineplex-ops/fleet-scheduler/internal/httpapi"
	"github.com/mineplex-ops/fleet-scheduler/internal/launch"
	"github.com/mineplex-ops/fleet-scheduler/internal/logging"
	"github.com/mineplex-ops/fleet-scheduler/internal/scheduler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := scheduler.Background(ctx)
	if err != nil {
		log.Fatalf("failed to connect to cache: %v", err)
	}

	fleet := sc.Fleet()
	launcher := selectLauncher(sc)
	stream := eventstream.New(sc.Logger)
	server := httpapi.New(sc, fleet, launcher, stream)

	addr := getEnv("LISTEN_ADDR", ":8080")
	httpServer := &http.Server{Addr: addr, Handler: server}

	go func() {
		log.Printf("fleet scheduler listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		sc.Logger.Error(shutdownCtx, "graceful shutdown failed", logging.Error(err))
	}
}

// selectLauncher picks ShellLauncher unless the KUBERNETES_SERVICE_HOST
// environment variable is set (the in-cluster signal; KUBECONFIG alone does
// not select the Kubernetes launcher),
// matching the two Launcher implementations named in SPEC_FULL.md's
// DOMAIN STACK. Building the in-cluster client is left to
// launch.NewKubernetesLauncherFromEnv so main stays free of client-go
// wiring details.
func selectLauncher(sc *scheduler.Context) dedicated.Launcher {
	if os.Getenv("KUBERNETES_SERVICE_HOST") == "" {
		return &launch.ShellLauncher{Monitor: sc.Config.MonitorInfo, Logger: sc.Logger}
	}
	k8sLauncher, err := launch.NewKubernetesLauncherFromEnv(sc.Logger)
	if err != nil {
		log.Fatalf("failed to build kubernetes launcher: %v", err)
	}
	return k8sLauncher
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
