package main

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/doc-scanner/client/internal/api"
	"github.com/doc-scanner/client/internal/config"
	"github.com/doc-scanner/client/internal/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local staging UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			a := newApp(cfg)
			a.probeScanner(cmd.Context())

			e := echo.New()
			e.HideBanner = true
			e.HTTPErrorHandler = api.ErrorHandler

			e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
				Skipper: func(c echo.Context) bool {
					path := c.Request().URL.Path
					return path == "/api/health" || path == "/api/scan/status"
				},
			}))
			e.Use(middleware.Recover())
			e.Use(middleware.BodyLimit(cfg.UI.BodyLimit))

			if cfg.UI.EnableCORS {
				e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
					AllowOrigins: []string{
						"http://localhost:5173", "http://127.0.0.1:5173",
						"http://localhost:3000", "http://127.0.0.1:3000",
					},
					AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
					AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
				}))
			}

			api.RegisterRoutes(e, a.apiHandlers())
			if err := web.RegisterStaticRoutes(e); err != nil {
				fmt.Printf("Warning: failed to register static routes: %v\n", err)
			}

			fmt.Printf("\nDocument Scanner UI\n")
			fmt.Printf("  Version:  %s\n", Version)
			fmt.Printf("  Scanner:  %s\n", cfg.Scanner.BaseURL)
			fmt.Printf("  Listen:   http://%s\n\n", cfg.ListenAddr())

			return e.Start(cfg.ListenAddr())
		},
	}
}
