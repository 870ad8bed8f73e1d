package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"sales/internal/log"
)

type Config struct {
	// Aggregation
	CommodityEnabled bool

	// Logging
	LogLevel string

	// Run ledger (empty path disables it)
	LedgerPath string

	// AMQP (empty URL disables it)
	AMQPURL          string
	AMQPExchange     string
	AMQPQueue        string
	AMQPDialAttempts int

	// Google Sheets mirror (empty spreadsheet ID disables it)
	GoogleSpreadsheetID      string
	GoogleBranchSheetName    string
	GoogleCommoditySheetName string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Publishing
	PublishTimeout time.Duration
}

func Load() *Config {
	cfg := &Config{
		CommodityEnabled: getEnvBool("SALES_COMMODITY_ENABLED", false),
		LogLevel:         getEnv("LOG_LEVEL", "warn"),

		LedgerPath: getEnv("SALES_LEDGER_PATH", ""),

		AMQPURL:          getEnv("AMQP_URL", ""),
		AMQPExchange:     getEnv("AMQP_EXCHANGE", "sales"),
		AMQPQueue:        getEnv("AMQP_QUEUE", "sales_reports"),
		AMQPDialAttempts: getEnvInt("AMQP_DIAL_ATTEMPTS", 3),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleBranchSheetName:    getEnv("GOOGLE_BRANCH_SHEET_NAME", "Branches"),
		GoogleCommoditySheetName: getEnv("GOOGLE_COMMODITY_SHEET_NAME", "Commodities"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")),

		PublishTimeout: getEnvDuration("PUBLISH_TIMEOUT", 30*time.Second),
	}

	return cfg
}

// LedgerEnabled reports whether runs are recorded to SQLite.
func (c *Config) LedgerEnabled() bool {
	return c.LedgerPath != ""
}

// AMQPEnabled reports whether report events are published.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// SheetsEnabled reports whether reports are mirrored to Google Sheets.
func (c *Config) SheetsEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

// Validate checks the settings the aggregation itself depends on. Publisher
// settings are checked separately when the publishers are built, so a broken
// optional publisher never blocks a run.
func (c *Config) Validate() error {
	var errors []string

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	return combine("configuration validation failed", errors)
}

// ValidatePublishTimeout checks the deadline shared by every publisher.
func (c *Config) ValidatePublishTimeout() error {
	var errors []string

	if c.PublishTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid publish timeout %v: must be at least 1 second", c.PublishTimeout))
	} else if c.PublishTimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid publish timeout %v: must be at most 10 minutes", c.PublishTimeout))
	}

	return combine("publish configuration invalid", errors)
}

// ValidateLedger checks the run ledger settings.
func (c *Config) ValidateLedger() error {
	var errors []string

	if strings.TrimSpace(c.LedgerPath) == "" {
		errors = append(errors, "ledger path cannot be blank")
	}

	return combine("ledger configuration invalid", errors)
}

// ValidateAMQP checks the report queue settings.
func (c *Config) ValidateAMQP() error {
	var errors []string

	if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
	} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
		errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
	}
	if c.AMQPExchange == "" {
		errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
	}
	if c.AMQPQueue == "" {
		errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
	}
	if c.AMQPDialAttempts < 1 || c.AMQPDialAttempts > 10 {
		errors = append(errors, fmt.Sprintf("invalid AMQP dial attempts %d: must be between 1 and 10", c.AMQPDialAttempts))
	}

	return combine("AMQP configuration invalid", errors)
}

// ValidateSheets checks the Google Sheets mirror settings.
func (c *Config) ValidateSheets() error {
	var errors []string

	if c.GoogleBranchSheetName == "" {
		errors = append(errors, "Google branch sheet name is required when a spreadsheet ID is set")
	}
	if c.CommodityEnabled && c.GoogleCommoditySheetName == "" {
		errors = append(errors, "Google commodity sheet name is required when commodity totals are enabled")
	}
	hasJSON := c.GoogleServiceAccountJSON != ""
	hasFile := c.GoogleServiceAccountFile != ""
	if !hasJSON && !hasFile {
		errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for the sheets mirror")
	}
	if hasFile && !hasJSON {
		if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
		}
	}

	return combine("Google Sheets configuration invalid", errors)
}

func combine(title string, errors []string) error {
	if len(errors) == 0 {
		return nil
	}
	return fmt.Errorf("%s:\n- %s", title, strings.Join(errors, "\n- "))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
