package cli

import (
	"bytes"
	"strings"
	"testing"

	"sales/internal/config"
)

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupLogger(&buf, "info")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	logger.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("expected log line, got %q", buf.String())
	}

	if _, err := SetupLogger(&buf, "chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLoadAndValidateConfigOverrides(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "SALES_COMMODITY_ENABLED", "SALES_LEDGER_PATH", "AMQP_URL", "GOOGLE_SPREADSHEET_ID", "PUBLISH_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadAndValidateConfig(func(c *config.Config) { c.CommodityEnabled = true })
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.CommodityEnabled {
		t.Fatal("expected override to apply")
	}

	_, err = LoadAndValidateConfig(func(c *config.Config) { c.LogLevel = "chatty" })
	if err == nil {
		t.Fatal("expected validation error")
	}
}
