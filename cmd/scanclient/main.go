package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doc-scanner/client/internal/api"
	"github.com/doc-scanner/client/internal/config"
	"github.com/doc-scanner/client/internal/results"
	"github.com/doc-scanner/client/internal/scan"
	"github.com/doc-scanner/client/internal/staging"
	"github.com/doc-scanner/client/internal/submit"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "scanclient",
		Short: "Batch client for the document scan service",
		Long: `scanclient stages document images and PDFs, submits them as a
single batch to a remote OCR scan service, and renders and exports
the structured results.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "scanclient.yaml", "path to config file")

	root.AddCommand(newRunCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// app wires the orchestrator and its collaborators. All state lives
// here for the lifetime of the process; nothing is persisted.
type app struct {
	cfg          *config.Config
	staging      *staging.Store
	results      *results.Store
	renderer     *results.Renderer
	scanner      *submit.Client
	orchestrator *scan.Orchestrator
}

func newApp(cfg *config.Config) *app {
	stagingStore := staging.NewStore()
	resultStore := results.NewStore()
	scanner := submit.NewClient(cfg.Scanner.BaseURL,
		time.Duration(cfg.Scanner.RequestTimeoutSeconds)*time.Second)

	return &app{
		cfg:          cfg,
		staging:      stagingStore,
		results:      resultStore,
		renderer:     results.NewRenderer(resultStore),
		scanner:      scanner,
		orchestrator: scan.New(stagingStore, resultStore, scanner),
	}
}

// probeScanner checks the remote service once at startup. Failure is
// logged only and never blocks usage.
func (a *app) probeScanner(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.scanner.Health(ctx); err != nil {
		fmt.Printf("[Health] Warning: scan service not reachable at %s: %v\n",
			a.scanner.BaseURL(), err)
		return
	}
	fmt.Printf("[Health] Scan service reachable at %s\n", a.scanner.BaseURL())
}

func (a *app) apiHandlers() *api.Handlers {
	return api.NewHandlers(&api.Dependencies{
		Staging:      a.staging,
		Results:      a.results,
		Renderer:     a.renderer,
		Orchestrator: a.orchestrator,
		Scanner:      a.scanner,
		Version:      Version,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scanclient %s (built %s)\n", Version, BuildTime)
		},
	}
}
