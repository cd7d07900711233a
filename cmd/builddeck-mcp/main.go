package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/builddeck/builddeck-mcp/internal/catalog"
	"github.com/builddeck/builddeck-mcp/internal/common"
	"github.com/builddeck/builddeck-mcp/internal/upstream"
)

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for desktop assistant clients)")
	configFile := flag.String("config", "builddeck-mcp.toml", "Path to config file")
	flag.Parse()

	cfg, err := common.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	common.LoadVersionFromFile()

	logger := common.NewLoggerFromConfig(cfg.Logging)

	client := upstream.NewClient(cfg, logger)
	registry := catalog.New(client, cfg, logger)

	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)
	registry.Attach(mcpServer)

	logger.Info().
		Str("upstream", cfg.Upstream.BaseURL).
		Int("tools", len(registry.Names())).
		Msg("BuildDeck MCP server ready")

	if *stdio {
		// Stdio transport: reads stdin, writes stdout
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	port := cfg.Server.Port

	// Streamable HTTP transport on the configured port
	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	log.Printf("Starting MCP Streamable HTTP on :%s", port)

	if err := httpServer.Start(":" + port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}
