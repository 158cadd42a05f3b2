package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/stocklyhq/stockly/internal/client/config"
	"github.com/stocklyhq/stockly/internal/flagx"
	"github.com/stocklyhq/stockly/internal/logging"
	"github.com/stocklyhq/stockly/internal/mcpserver"
)

func main() {
	cfg := config.LoadConfig()

	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	var listen string
	fs.StringVar(&listen, "listen", "", "serve MCP over streamable HTTP on this address instead of stdio")
	fs.StringVar(&listen, "l", "", "shorthand for -listen")
	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-l", "-listen"}))

	// Logs go to stderr so the stdio transport keeps stdout to itself.
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	srv, err := mcpserver.NewServer(mcpserver.NewServerRequest{
		Config: mcpserver.Config{
			Listen:          listen,
			UpstreamBaseURL: cfg.ServerBaseURL,
			CredentialsPath: cfg.CredentialsPath,
			UpstreamTimeout: cfg.RequestTimeout,
		},
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
