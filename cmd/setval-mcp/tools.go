package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createAnalyzeStockTool returns the analyze_stock tool definition
func createAnalyzeStockTool() mcp.Tool {
	return mcp.NewTool("analyze_stock",
		mcp.WithDescription("Run the full valuation and scoring analysis for a SET-listed stock: five intrinsic-value models, five composite scores, an aggregate verdict with risk tier, and a confidence assessment."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock symbol, with or without market suffix (e.g. 'CPALL' or 'CPALL.BK')"),
		),
		mcp.WithNumber("history_years",
			mcp.Description("Years of historical ratios to use (default: 10)"),
		),
		mcp.WithString("market_direction",
			mcp.Description("Current market direction context for the growth checklist (e.g. 'uptrend', 'correction')"),
		),
		mcp.WithString("macro_factors",
			mcp.Description("External macro factors to note in the growth checklist"),
		),
	)
}

// createRunValuationModelsTool returns the run_valuation_models tool definition
func createRunValuationModelsTool() mcp.Tool {
	return mcp.NewTool("run_valuation_models",
		mcp.WithDescription("Run only the five intrinsic-value models (PE Band, Dividend Discount, DCF, Graham Number, Asset Based) and the aggregate verdict for a stock."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock symbol, with or without market suffix"),
		),
	)
}

// createRunCompositeScoresTool returns the run_composite_scores tool definition
func createRunCompositeScoresTool() mcp.Tool {
	return mcp.NewTool("run_composite_scores",
		mcp.WithDescription("Run only the five composite scorers (Altman Z, Piotroski F, DuPont, Dividend Safety, CANSLIM) for a stock."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock symbol, with or without market suffix"),
		),
		mcp.WithString("market_direction",
			mcp.Description("Current market direction context for the growth checklist"),
		),
		mcp.WithString("macro_factors",
			mcp.Description("External macro factors to note in the growth checklist"),
		),
	)
}

// createHistoricalRatiosTool returns the historical_ratios tool definition
func createHistoricalRatiosTool() mcp.Tool {
	return mcp.NewTool("historical_ratios",
		mcp.WithDescription("Summarize the historical ratio series (PE, PBV, ROE, ROA, ROIC) for a stock: mean, range, current percentile rank, and trend."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock symbol, with or without market suffix"),
		),
		mcp.WithNumber("years",
			mcp.Description("Years of history to summarize (default: 10)"),
		),
	)
}

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Setval MCP server version. Use this to verify connectivity."),
	)
}
