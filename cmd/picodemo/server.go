// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/thatcatcamp/picodemo/internal/config"
	"github.com/thatcatcamp/picodemo/internal/handlers"
	"github.com/thatcatcamp/picodemo/internal/logging"
	"github.com/thatcatcamp/picodemo/internal/middleware"
	"github.com/thatcatcamp/picodemo/internal/tls"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server operations",
	Long:  "Start and manage the picodemo HTTP server",
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		logger, err := newLogger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid log.level: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runServer(ctx, logger); err != nil {
			logger.Error("server stopped", err)
			os.Exit(1)
		}
	},
}

func runServer(ctx context.Context, logger *logging.Logger) error {
	site, err := newSite(logger)
	if err != nil {
		return err
	}

	// Chrome and palette follow config edits without a restart
	if err := config.Watch(func(path string) {
		chrome, err := chromeFromConfig()
		if err != nil {
			logger.Error("ignoring config change", err, "path", path)
			return
		}
		site.SetChrome(chrome, config.GetString("theme.palette"))
		logger.Info("config reloaded", "path", path)
	}); err != nil {
		return err
	}

	window := config.GetDuration("theme.toggle_rate_window")
	if window <= 0 {
		window = time.Minute
	}
	toggleLimiter := middleware.NewRateLimiter(config.GetInt("theme.toggle_rate_limit"), window)
	go toggleLimiter.Run(ctx)

	r, err := newRouter(site, logger, toggleLimiter)
	if err != nil {
		return err
	}

	if config.GetBool("server.tls_enabled") {
		return serveTLS(ctx, r, logger)
	}

	httpAddr := fmt.Sprintf(":%s", config.GetString("server.http_port"))
	logger.Info("starting HTTP server (TLS disabled)", "addr", httpAddr)
	return serve(ctx, &http.Server{Addr: httpAddr, Handler: r}, logger, false)
}

func newRouter(site *handlers.Site, logger *logging.Logger, toggleLimiter *middleware.RateLimiter) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	// ClientIP, and with it the toggle limit, only trusts forwarding
	// headers sent by these peers
	if err := r.SetTrustedProxies(config.GetStringSlice("server.trusted_proxies")); err != nil {
		return nil, fmt.Errorf("invalid server.trusted_proxies: %w", err)
	}
	r.Use(middleware.RequestIDMiddleware())
	r.Use(logging.Middleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeadersMiddleware())

	site.Mount(r, toggleLimiter)
	return r, nil
}

// redirectHandler serves plain HTTP once TLS is on: ACME HTTP-01 challenges
// go to challenges, everything else is redirected to HTTPS
func redirectHandler(challenges func(http.Handler) http.Handler) http.Handler {
	redirect := gin.New()
	redirect.Use(middleware.HTTPSRedirectMiddleware())
	redirect.NoRoute(func(c *gin.Context) { c.Status(http.StatusNotFound) })
	return challenges(redirect)
}

func serveTLS(ctx context.Context, r *gin.Engine, logger *logging.Logger) error {
	tlsCfg, err := tls.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load TLS config: %w", err)
	}

	tlsManager, err := tls.NewManager(ctx, tlsCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize TLS manager: %w", err)
	}

	httpAddr := fmt.Sprintf(":%s", config.GetString("server.http_port"))
	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return fmt.Errorf("failed to bind HTTP server to %s (port 80 typically requires root): %w", httpAddr, err)
	}

	redirectServer := &http.Server{Handler: redirectHandler(tlsManager.HTTPChallengeHandler)}
	go func() {
		logger.Info("HTTP server listening (ACME challenges + redirects)", "addr", httpAddr)
		if err := redirectServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", err)
		}
	}()
	defer redirectServer.Close()

	httpsAddr := fmt.Sprintf(":%s", config.GetString("server.https_port"))
	logger.Info("starting HTTPS server", "addr", httpsAddr, "domains", tlsCfg.AllowedDomains())

	return serve(ctx, &http.Server{
		Addr:      httpsAddr,
		Handler:   r,
		TLSConfig: tlsManager.GetTLSConfig(),
	}, logger, true)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server, logger *logging.Logger, useTLS bool) error {
	errCh := make(chan error, 1)
	go func() {
		if useTLS {
			errCh <- srv.ListenAndServeTLS("", "")
		} else {
			errCh <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "addr", srv.Addr)
	timeout := config.GetDuration("server.shutdown_timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)
}
