// Package setsmart provides a client for the SET SMART market-data API
package setsmart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/kittipos/setval/internal/common"
	"github.com/kittipos/setval/internal/interfaces"
	"github.com/kittipos/setval/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultBaseURL   = "https://api.setsmart.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the MarketDataClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new SET SMART client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("setsmart API error %d on %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// get performs a rate-limited GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)

	u := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("SET SMART request")

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: string(body), Endpoint: endpoint}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// fundamentalsResponse is the wire shape of the fundamentals endpoint.
type fundamentalsResponse struct {
	Symbol            string      `json:"symbol"`
	Price             flexFloat64 `json:"price"`
	EPS               flexFloat64 `json:"eps"`
	DPS               flexFloat64 `json:"dps"`
	FreeCashFlow      flexFloat64 `json:"free_cash_flow"`
	SharesOutstanding flexFloat64 `json:"shares_outstanding"`
	PE                flexFloat64 `json:"pe"`
	PBV               flexFloat64 `json:"pbv"`
	ROE               flexFloat64 `json:"roe"`
	DE                flexFloat64 `json:"de"`
	GrossMargin       flexFloat64 `json:"gross_margin"`
	OperatingMargin   flexFloat64 `json:"operating_margin"`
	NetMargin         flexFloat64 `json:"net_margin"`
	WorkingCapital    flexFloat64 `json:"working_capital"`
	TotalAssets       flexFloat64 `json:"total_assets"`
	RetainedEarnings  flexFloat64 `json:"retained_earnings"`
	EBIT              flexFloat64 `json:"ebit"`
	MarketCap         flexFloat64 `json:"market_cap"`
	TotalLiabilities  flexFloat64 `json:"total_liabilities"`
	Revenue           flexFloat64 `json:"revenue"`
	OperatingCashFlow flexFloat64 `json:"operating_cash_flow"`
	Capex             flexFloat64 `json:"capex"`
	NetIncome         flexFloat64 `json:"net_income"`
	InstitutionalPct  flexFloat64 `json:"institutional_pct"`
	PriceChange52W    flexFloat64 `json:"price_change_52w"`
	SharesChangeYoY   flexFloat64 `json:"shares_change_yoy"`
	SharesChangeQoQ   flexFloat64 `json:"shares_change_qoq"`
}

// GetFundamentals retrieves the raw fundamentals record for a symbol
func (c *Client) GetFundamentals(ctx context.Context, symbol string) (*models.RawFundamentals, error) {
	var resp fundamentalsResponse
	if err := c.get(ctx, "/api/v1/fundamentals/"+url.PathEscape(symbol), nil, &resp); err != nil {
		return nil, err
	}

	raw := &models.RawFundamentals{
		Symbol:                    resp.Symbol,
		CurrentPrice:              float64(resp.Price),
		EPS:                       float64(resp.EPS),
		DividendPerShare:          float64(resp.DPS),
		FreeCashFlow:              float64(resp.FreeCashFlow),
		SharesOutstanding:         float64(resp.SharesOutstanding),
		PERatio:                   float64(resp.PE),
		PBRatio:                   float64(resp.PBV),
		ReturnOnEquity:            float64(resp.ROE),
		DebtToEquity:              float64(resp.DE),
		GrossMargin:               float64(resp.GrossMargin),
		OperatingMargin:           float64(resp.OperatingMargin),
		ProfitMargin:              float64(resp.NetMargin),
		WorkingCapital:            float64(resp.WorkingCapital),
		TotalAssets:               float64(resp.TotalAssets),
		RetainedEarnings:          float64(resp.RetainedEarnings),
		EBIT:                      float64(resp.EBIT),
		MarketValueEquity:         float64(resp.MarketCap),
		TotalLiabilities:          float64(resp.TotalLiabilities),
		Sales:                     float64(resp.Revenue),
		OperatingCashFlow:         float64(resp.OperatingCashFlow),
		CapitalExpenditures:       float64(resp.Capex),
		NetIncome:                 float64(resp.NetIncome),
		InstitutionalOwnershipPct: float64(resp.InstitutionalPct),
		PriceChange52WeekPct:      float64(resp.PriceChange52W),
		SharesChangeYoYPct:        float64(resp.SharesChangeYoY),
		SharesChangeQoQPct:        float64(resp.SharesChangeQoQ),
	}
	if raw.Symbol == "" {
		raw.Symbol = symbol
	}
	return raw, nil
}

// ratioPeriodResponse is the wire shape of one ratio-history period.
type ratioPeriodResponse struct {
	FiscalYear int         `json:"fiscal_year"`
	PE         flexFloat64 `json:"pe"`
	PBV        flexFloat64 `json:"pbv"`
	ROE        flexFloat64 `json:"roe"`
	ROA        flexFloat64 `json:"roa"`
	ROIC       flexFloat64 `json:"roic"`
}

// GetRatioHistory retrieves the per-period ratio series, most recent first
func (c *Client) GetRatioHistory(ctx context.Context, symbol string, years int) (models.HistoricalSeries, error) {
	params := url.Values{}
	if years > 0 {
		params.Set("years", strconv.Itoa(years))
	}

	var resp []ratioPeriodResponse
	if err := c.get(ctx, "/api/v1/ratios/"+url.PathEscape(symbol), params, &resp); err != nil {
		return nil, err
	}

	series := make(models.HistoricalSeries, 0, len(resp))
	for _, p := range resp {
		series = append(series, models.RatioPeriod{
			FiscalYear: p.FiscalYear,
			PE:         float64(p.PE),
			PBV:        float64(p.PBV),
			ROE:        float64(p.ROE),
			ROA:        float64(p.ROA),
			ROIC:       float64(p.ROIC),
		})
	}
	return series, nil
}

// earningsResponse is the wire shape of the earnings endpoint.
type earningsResponse struct {
	QuarterlyEPS *struct {
		Current   flexFloat64 `json:"current"`
		PriorYear flexFloat64 `json:"prior_year"`
	} `json:"quarterly_eps"`
	AnnualNetIncome *struct {
		Current       flexFloat64 `json:"current"`
		ThreeYearsAgo flexFloat64 `json:"three_years_ago"`
	} `json:"annual_net_income"`
}

// GetEarningsDeltas retrieves the growth comparisons for the CANSLIM
// checklist; absent blocks stay nil
func (c *Client) GetEarningsDeltas(ctx context.Context, symbol string) (*models.EarningsDeltas, error) {
	var resp earningsResponse
	if err := c.get(ctx, "/api/v1/earnings/"+url.PathEscape(symbol), nil, &resp); err != nil {
		return nil, err
	}

	deltas := &models.EarningsDeltas{}
	if q := resp.QuarterlyEPS; q != nil {
		deltas.Quarterly = &models.EarningsDelta{
			Current:  float64(q.Current),
			Prior:    float64(q.PriorYear),
			Supplied: true,
		}
	}
	if a := resp.AnnualNetIncome; a != nil {
		deltas.Annual = &models.EarningsDelta{
			Current:  float64(a.Current),
			Prior:    float64(a.ThreeYearsAgo),
			Supplied: true,
		}
	}
	return deltas, nil
}

// GetDividendHistory retrieves per-year dividend per share, most recent
// year first
func (c *Client) GetDividendHistory(ctx context.Context, symbol string, years int) ([]float64, error) {
	params := url.Values{}
	if years > 0 {
		params.Set("years", strconv.Itoa(years))
	}

	var resp []struct {
		FiscalYear int         `json:"fiscal_year"`
		DPS        flexFloat64 `json:"dps"`
	}
	if err := c.get(ctx, "/api/v1/dividends/"+url.PathEscape(symbol), params, &resp); err != nil {
		return nil, err
	}

	history := make([]float64, 0, len(resp))
	for _, p := range resp {
		history = append(history, float64(p.DPS))
	}
	return history, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
