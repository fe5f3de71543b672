package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kittipos/setval/internal/common"
	"github.com/kittipos/setval/internal/interfaces"
)

// handleAnalyzeStock implements the analyze_stock tool
func handleAnalyzeStock(service interfaces.AnalysisService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		opts := interfaces.AnalyzeOptions{
			HistoryYears:    request.GetInt("history_years", 0),
			MarketDirection: request.GetString("market_direction", ""),
			MacroFactors:    request.GetString("macro_factors", ""),
		}

		logger.Info().Str("symbol", symbol).Msg("Analyzing stock")

		report, err := service.AnalyzeSymbol(ctx, symbol, opts)
		if err != nil {
			logger.Error().Str("symbol", symbol).Err(err).Msg("Analysis failed")
			return errorResult(fmt.Sprintf("Analysis failed for '%s': %v", symbol, err)), nil
		}

		return textResult(formatAnalysisReport(report)), nil
	}
}

// handleRunValuationModels implements the run_valuation_models tool
func handleRunValuationModels(service interfaces.AnalysisService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		results, verdict, err := service.RunValuations(ctx, symbol)
		if err != nil {
			logger.Error().Str("symbol", symbol).Err(err).Msg("Valuation run failed")
			return errorResult(fmt.Sprintf("Valuation failed for '%s': %v", symbol, err)), nil
		}

		return textResult(formatValuations(results, verdict)), nil
	}
}

// handleRunCompositeScores implements the run_composite_scores tool
func handleRunCompositeScores(service interfaces.AnalysisService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		opts := interfaces.AnalyzeOptions{
			MarketDirection: request.GetString("market_direction", ""),
			MacroFactors:    request.GetString("macro_factors", ""),
		}

		scores, err := service.RunScores(ctx, symbol, opts)
		if err != nil {
			logger.Error().Str("symbol", symbol).Err(err).Msg("Score run failed")
			return errorResult(fmt.Sprintf("Scoring failed for '%s': %v", symbol, err)), nil
		}

		return textResult(formatScores(symbol, scores)), nil
	}
}

// handleHistoricalRatios implements the historical_ratios tool
func handleHistoricalRatios(service interfaces.AnalysisService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		years := request.GetInt("years", 0)

		stats, err := service.AnalyzeHistory(ctx, symbol, years)
		if err != nil {
			logger.Error().Str("symbol", symbol).Err(err).Msg("History analysis failed")
			return errorResult(fmt.Sprintf("History analysis failed for '%s': %v", symbol, err)), nil
		}

		return textResult(formatRatioStats(symbol, stats)), nil
	}
}

// handleGetVersion implements the get_version tool
func handleGetVersion(logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger.Debug().Msg("Version requested")
		return textResult(fmt.Sprintf("Setval MCP server %s", common.GetFullVersion())), nil
	}
}

// Helper functions

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
