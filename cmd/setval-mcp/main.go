package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/kittipos/setval/internal/clients/setsmart"
	"github.com/kittipos/setval/internal/common"
	"github.com/kittipos/setval/internal/services/analysis"
)

func main() {
	configPath := os.Getenv("SETVAL_CONFIG")
	if configPath == "" {
		configPath = "setval.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout carries the MCP protocol.
	logger := common.NewLogger(config.Logging.Level)

	client := setsmart.NewClient(config.Clients.SetSmart.APIKey,
		setsmart.WithBaseURL(config.Clients.SetSmart.BaseURL),
		setsmart.WithRateLimit(config.Clients.SetSmart.RateLimit),
		setsmart.WithTimeout(config.Clients.SetSmart.GetTimeout()),
		setsmart.WithLogger(logger),
	)

	analysisService := analysis.NewService(client, config.Valuation, logger)

	mcpServer := server.NewMCPServer(
		"setval",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createAnalyzeStockTool(), handleAnalyzeStock(analysisService, logger))
	mcpServer.AddTool(createRunValuationModelsTool(), handleRunValuationModels(analysisService, logger))
	mcpServer.AddTool(createRunCompositeScoresTool(), handleRunCompositeScores(analysisService, logger))
	mcpServer.AddTool(createHistoricalRatiosTool(), handleHistoricalRatios(analysisService, logger))
	mcpServer.AddTool(createGetVersionTool(), handleGetVersion(logger))

	logger.Info().Str("version", common.GetVersion()).Time("started", time.Now()).Msg("Setval MCP server starting")

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
