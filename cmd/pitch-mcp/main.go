package main

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/okian/pitchgate/internal/adapters/mcptools"
	"github.com/okian/pitchgate/internal/config"
	"github.com/okian/pitchgate/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("pitch-mcp: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(context.Background())
	if err != nil {
		return err
	}
	// stdout carries the MCP stdio transport
	if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	_ = logger.SetLevelString(cfg.LogLevel)

	logger.Get().Info(context.Background(), "serving pitch tools over stdio", logger.Int("minScore", cfg.MinScore))
	return server.ServeStdio(mcptools.NewServer(cfg.MinScore))
}
