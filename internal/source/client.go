// Package source fetches accounting records from the remote accounting
// server's JSON export API and normalizes them into models.InvoiceRecord.
//
// The server exposes one export endpoint per entity kind under the company
// namespace, e.g. GET /c/<company>/invoices/export.json?from=...&to=...
// with HTTP basic authentication. Responses carry a "rows" array of partial
// records; missing fields are filled with the fixed defaults during
// normalization so aggregators always see fully-populated records.
//
// No retries and no backoff: a failed fetch is reported once to the caller.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"findigest/internal/logger"
	"findigest/pkg/models"
)

// Entity kinds exposed by the export API.
const (
	EntityInvoices        = "invoices"
	EntityOverdueInvoices = "overdue_invoices"
)

// entityPaths maps entity kinds to export resource paths.
var entityPaths = map[string]string{
	EntityInvoices:        "invoices",
	EntityOverdueInvoices: "overdue-invoices",
}

// Filter restricts a fetch to a date range.
type Filter struct {
	From time.Time
	To   time.Time
}

// Config holds the connection settings for the accounting server.
type Config struct {
	// BaseURL is the server root, e.g. "https://accounting.example.com:5434".
	BaseURL string

	// Company is the company namespace on the server.
	Company string

	// Username and Password are used for HTTP basic authentication.
	// Both empty means unauthenticated access.
	Username string
	Password string

	// Timeout bounds each HTTP request. Default: 60 seconds.
	Timeout time.Duration
}

// Client is an HTTP client for the accounting server export API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client for the accounting server export API.
func NewClient(cfg Config) (*Client, error) {
	const op = "NewClient"

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s: base URL is required", op)
	}
	if cfg.Company == "" {
		return nil, fmt.Errorf("%s: company is required", op)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.WithComponent("source"),
	}, nil
}

// rawAmount accepts server amounts as JSON numbers or quoted decimal strings.
// A missing or malformed amount degrades to zero instead of failing the fetch.
type rawAmount struct {
	value decimal.Decimal
}

func (a *rawAmount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		a.value = decimal.Zero
		return nil
	}
	a.value = d
	return nil
}

// rawRecord is one row of the export response. Every field is optional; the
// server is known to return partial rows.
type rawRecord struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	IssueDate    string    `json:"issue_date"`
	DueDate      string    `json:"due_date"`
	Amount       rawAmount `json:"amount"`
	Currency     string    `json:"currency"`
	DocumentType string    `json:"document_type"`
	Customer     string    `json:"customer"`
	CustomerID   string    `json:"customer_id"`
	State        string    `json:"state"`
}

type exportResponse struct {
	Rows []rawRecord `json:"rows"`
}

// Fetch retrieves and normalizes all records of the given entity kind within
// the filter's date range.
func (c *Client) Fetch(ctx context.Context, entity string, filter Filter) ([]models.InvoiceRecord, error) {
	const op = "Fetch"

	path, ok := entityPaths[entity]
	if !ok {
		return nil, newSourceError(op, ErrUnknownEntity, entity)
	}

	endpoint := fmt.Sprintf("%s/c/%s/%s/export.json", c.cfg.BaseURL, url.PathEscape(c.cfg.Company), path)
	query := url.Values{}
	if !filter.From.IsZero() {
		query.Set("from", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		query.Set("to", filter.To.Format("2006-01-02"))
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	c.log.Debug().
		Str("entity", entity).
		Str("endpoint", endpoint).
		Msg("Fetching records from accounting server")

	var payload exportResponse
	if err := c.getJSON(ctx, op, endpoint, &payload); err != nil {
		return nil, err
	}

	records := make([]models.InvoiceRecord, 0, len(payload.Rows))
	for _, row := range payload.Rows {
		records = append(records, normalizeRow(row))
	}

	c.log.Info().
		Str("entity", entity).
		Int("records", len(records)).
		Msg("Fetched records from accounting server")

	return records, nil
}

// TestConnection verifies that the accounting server is reachable and the
// company namespace exists. Used by the --test-connection flag.
func (c *Client) TestConnection(ctx context.Context) error {
	const op = "TestConnection"

	endpoint := fmt.Sprintf("%s/c/%s/status.json", c.cfg.BaseURL, url.PathEscape(c.cfg.Company))

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, op, endpoint, &payload); err != nil {
		return err
	}

	c.log.Info().
		Str("server", c.cfg.BaseURL).
		Str("company", c.cfg.Company).
		Str("status", payload.Status).
		Msg("Accounting server connection OK")

	return nil
}

func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return newSourceError(op, err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newSourceError(op, fmt.Errorf("%w: %v", ErrConnectionFailed, err), "")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newSourceError(op, ErrUnexpectedStatus, fmt.Sprintf("HTTP %d from %s", resp.StatusCode, endpoint))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newSourceError(op, fmt.Errorf("%w: %v", ErrInvalidResponse, err), "")
	}
	return nil
}

// normalizeRow converts a partial export row into a fully-populated record.
// Unparseable amounts and dates degrade to zero values instead of failing the
// whole fetch.
func normalizeRow(row rawRecord) models.InvoiceRecord {
	return models.Normalize(models.InvoiceRecord{
		ID:           row.ID,
		Number:       row.Number,
		IssueDate:    parseDate(row.IssueDate),
		DueDate:      parseDate(row.DueDate),
		Amount:       row.Amount.value,
		Currency:     row.Currency,
		DocumentType: row.DocumentType,
		Customer:     row.Customer,
		CustomerID:   row.CustomerID,
		State:        row.State,
	})
}

// parseDate accepts the server's plain date format with an RFC 3339 fallback.
// Anything else becomes the zero time.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
