// Package taxoracle is an HTTP client for a Stripe-Tax-shaped tax
// calculation API. It implements pricing.Oracle; any provider exposing the
// same calculation shape is substitutable.
package taxoracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/pricing"
)

// Client calls the tax calculation API. Each invocation is a single
// outbound request bounded by the HTTP client timeout; retries are left to
// the caller's fail-open policy so checkout latency stays bounded.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new tax oracle client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// calculationRequest is the wire request for a tax calculation.
type calculationRequest struct {
	Currency        string           `json:"currency"`
	LineItems       []lineItem       `json:"line_items"`
	CustomerDetails *customerDetails `json:"customer_details"`
}

type lineItem struct {
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

type customerDetails struct {
	Address       wireAddress `json:"address"`
	AddressSource string      `json:"address_source"`
}

type wireAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// calculationResponse is the wire response for a tax calculation.
type calculationResponse struct {
	TaxAmountExclusive int64            `json:"tax_amount_exclusive"`
	TaxBreakdown       []breakdownEntry `json:"tax_breakdown"`
}

type breakdownEntry struct {
	Jurisdiction struct {
		Level       string `json:"level"`
		DisplayName string `json:"display_name"`
		Name        string `json:"name"`
		State       string `json:"state"`
	} `json:"jurisdiction"`
}

// Calculate requests a jurisdiction-level tax quote.
func (c *Client) Calculate(ctx context.Context, req pricing.OracleRequest) (*pricing.OracleQuote, error) {
	country := req.Address.Country
	if country == "" {
		country = "US"
	}

	payload := calculationRequest{
		Currency: req.Currency,
		LineItems: []lineItem{
			{Amount: req.AmountMinorUnits, Reference: req.Reference},
		},
		CustomerDetails: &customerDetails{
			Address: wireAddress{
				Line1:      req.Address.Line1,
				Line2:      req.Address.Line2,
				City:       req.Address.City,
				State:      req.Address.State,
				PostalCode: req.Address.PostalCode,
				Country:    country,
			},
			AddressSource: "shipping",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal calculation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/tax/calculations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create calculation request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tax calculation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tax calculation status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded calculationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode calculation response: %w", err)
	}

	quote := &pricing.OracleQuote{
		TaxAmountMinorUnits: decoded.TaxAmountExclusive,
		Breakdown:           make([]pricing.JurisdictionTax, 0, len(decoded.TaxBreakdown)),
	}
	for _, entry := range decoded.TaxBreakdown {
		quote.Breakdown = append(quote.Breakdown, pricing.JurisdictionTax{
			Level:       entry.Jurisdiction.Level,
			DisplayName: entry.Jurisdiction.DisplayName,
			Name:        entry.Jurisdiction.Name,
			State:       entry.Jurisdiction.State,
		})
	}

	return quote, nil
}

// Ensure the client satisfies the pricing oracle interface.
var _ pricing.Oracle = (*Client)(nil)
