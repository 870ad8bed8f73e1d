// Package google mirrors the written sales reports into a Google
// Spreadsheet, one sheet per entity kind.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gauth "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"sales/internal/core"
)

// Config selects the spreadsheet, its sheets and the service account.
type Config struct {
	SpreadsheetID   string
	BranchSheet     string
	CommoditySheet  string
	CredentialsJSON string
	CredentialsFile string
}

type Client struct {
	svc            *gsheet.Service
	spreadsheetID  string
	branchSheet    string
	commoditySheet string
}

// NewClient creates a Sheets client authenticated with a service account.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := newSheetsService(ctx, credentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:            svc,
		spreadsheetID:  spreadsheetID,
		branchSheet:    sheetOrDefault(cfg.BranchSheet, "Branches"),
		commoditySheet: sheetOrDefault(cfg.CommoditySheet, "Commodities"),
	}, nil
}

func loadCredentials(cfg Config) ([]byte, error) {
	serviceAccountJSON := strings.TrimSpace(cfg.CredentialsJSON)
	serviceAccountFile := strings.TrimSpace(cfg.CredentialsFile)

	switch {
	case serviceAccountJSON != "":
		return []byte(serviceAccountJSON), nil
	case serviceAccountFile != "":
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// newSheetsService builds the Sheets service on top of a pooled HTTP
// transport that carries the service account token source.
func newSheetsService(ctx context.Context, credentialsJSON []byte) (*gsheet.Service, error) {
	base := context.WithValue(ctx, oauth2.HTTPClient, newHTTPClientWithPooling())

	creds, err := gauth.CredentialsFromJSON(base, credentialsJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	slog.DebugContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx, goption.WithHTTPClient(oauth2.NewClient(base, creds.TokenSource)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// newHTTPClientWithPooling creates an HTTP client for the Google Sheets API
// with connection pooling and bounded timeouts.
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second, // TCP connection timeout
		KeepAlive: 30 * time.Second, // Keep-alive probe interval
	}

	transport := &http.Transport{
		DialContext: dialer.DialContext,

		// A run issues a handful of requests to a single host
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second, // Overall request timeout
	}
}

// Name identifies the client as a report publisher.
func (c *Client) Name() string {
	return "sheets"
}

// Publish replaces the contents of the branch sheet, and of the commodity
// sheet when that dimension is enabled, with the run totals.
func (c *Client) Publish(ctx context.Context, s core.Summary) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	if err := c.replaceSheet(ctx, c.branchSheet, s.Branches); err != nil {
		return err
	}
	if s.CommodityEnabled {
		if err := c.replaceSheet(ctx, c.commoditySheet, s.Commodities); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) replaceSheet(ctx context.Context, sheet string, entities []core.Entity) error {
	rng := sheetRange(sheet)

	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", rng, err)
	}

	if len(entities) == 0 {
		return nil
	}

	// RAW keeps codes such as 001 as text
	vr := &gsheet.ValueRange{Values: toValueRows(entities)}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, fmt.Sprintf("%s!A1", sheet), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", rng, err)
	}

	slog.DebugContext(ctx, "Mirrored sales totals", "sheet", sheet, "rows", len(entities))
	return nil
}

func sheetRange(sheet string) string {
	return fmt.Sprintf("%s!A:C", sheet)
}

func sheetOrDefault(name, fallback string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fallback
}

// toValueRows lays out one code, name, total row per entity.
func toValueRows(entities []core.Entity) [][]any {
	rows := make([][]any, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, []any{e.Code, e.Name, e.Total})
	}
	return rows
}
