package sales

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sales/internal/core"
	"sales/internal/log"
)

func testContext() context.Context {
	return log.NewContext(context.Background(), log.Discard())
}

func mustWrite(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func mustRead(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(b)
}

func assertNotExist(t *testing.T, dir, name string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(dir, name)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected %s to be absent, stat err=%v", name, err)
	}
}

func assertKind(t *testing.T, err error, kind core.Kind) *core.Error {
	t.Helper()
	var e *core.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *core.Error of kind %v, got %v", kind, err)
	}
	if e.Kind != kind {
		t.Fatalf("expected kind %v, got %v (%v)", kind, e.Kind, err)
	}
	return e
}
