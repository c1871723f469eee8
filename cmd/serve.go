package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	mcpserver "github.com/fitz/taskflow/internal/mcp"
	"github.com/fitz/taskflow/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server or the HTTP API",
	Long: `Start the taskflow server.

By default the Model Context Protocol (MCP) server runs on stdio so an AI
agent can create tasks and read the month, week and timeline layouts.

With --http, the JSON API is served under /api and the MCP streamable HTTP
transport under /mcp.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func runServe(cmd *cobra.Command) error {
	httpMode, _ := cmd.Flags().GetBool("http")
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.HTTPPort
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	rt, err := openRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	server := mcpserver.NewServer(rt.controller, logger)

	if !httpMode {
		logger.Info("starting MCP server on stdio")
		if err := server.Run(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		logger.Info("server stopped")
		return nil
	}

	gin.SetMode(gin.ReleaseMode)
	api := web.NewServer(rt.controller, server.HTTPHandler(), logger)

	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starting HTTP server", "addr", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("http", false, "Serve the HTTP API and MCP over HTTP instead of MCP on stdio")
	serveCmd.Flags().Int("port", 0, "HTTP port (default TASKFLOW_HTTP_PORT or 8080)")
}
