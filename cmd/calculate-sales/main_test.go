package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func clearPublisherEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SALES_COMMODITY_ENABLED", "LOG_LEVEL", "SALES_LEDGER_PATH",
		"AMQP_URL", "GOOGLE_SPREADSHEET_ID", "PUBLISH_TIMEOUT",
		"GOOGLE_SERVICE_ACCOUNT_JSON", "GOOGLE_SERVICE_ACCOUNT_FILE", "GOOGLE_APPLICATION_CREDENTIALS",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func execute(t *testing.T, args ...string) (string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if args == nil {
		// cobra falls back to os.Args when no arguments are set
		args = []string{}
	}
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	_ = cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String()
}

func TestRootCmdSuccessPrintsNothing(t *testing.T) {
	clearPublisherEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "branch.lst", "001,Tokyo\n002,Osaka\n")
	writeFile(t, dir, "00000001.rcd", "002\n500\n")

	stdout, _ := execute(t, dir)
	if stdout != "" {
		t.Errorf("expected no output on success, got %q", stdout)
	}

	got, err := os.ReadFile(filepath.Join(dir, "branch.out"))
	if err != nil {
		t.Fatalf("read branch.out: %v", err)
	}
	if string(got) != "001,Tokyo,0\n002,Osaka,500\n" {
		t.Errorf("unexpected branch.out %q", got)
	}
}

func TestRootCmdCommodityFlag(t *testing.T) {
	clearPublisherEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "branch.lst", "001,Tokyo\n")
	writeFile(t, dir, "commodity.lst", "SFT00001,Software\n")
	writeFile(t, dir, "00000001.rcd", "001\nSFT00001\n700\n")

	if stdout, _ := execute(t, "--commodity", dir); stdout != "" {
		t.Fatalf("unexpected output %q", stdout)
	}

	got, err := os.ReadFile(filepath.Join(dir, "commodity.out"))
	if err != nil {
		t.Fatalf("read commodity.out: %v", err)
	}
	if string(got) != "SFT00001,Software,700\n" {
		t.Errorf("unexpected commodity.out %q", got)
	}
}

func TestRootCmdFailureMessages(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		args  func(dir string) []string
		want  string
	}{
		{
			name:  "no arguments",
			setup: func(*testing.T, string) {},
			args:  func(string) []string { return nil },
			want:  "予期せぬエラーが発生しました\n",
		},
		{
			name:  "two arguments",
			setup: func(*testing.T, string) {},
			args:  func(dir string) []string { return []string{dir, dir} },
			want:  "予期せぬエラーが発生しました\n",
		},
		{
			name:  "missing branch definitions",
			setup: func(*testing.T, string) {},
			args:  func(dir string) []string { return []string{dir} },
			want:  "支店定義ファイルが存在しません\n",
		},
		{
			name: "gap in record files",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "branch.lst", "001,Tokyo\n")
				writeFile(t, dir, "00000001.rcd", "001\n100\n")
				writeFile(t, dir, "00000003.rcd", "001\n100\n")
			},
			args: func(dir string) []string { return []string{dir} },
			want: "売上ファイル名が連番になっていません\n",
		},
		{
			name: "unknown branch code",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "branch.lst", "001,Tokyo\n")
				writeFile(t, dir, "00000001.rcd", "999\n100\n")
			},
			args: func(dir string) []string { return []string{dir} },
			want: "00000001.rcdの支店コードが不正です\n",
		},
		{
			name: "bad log level",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "branch.lst", "001,Tokyo\n")
			},
			args: func(dir string) []string { return []string{"--log-level", "loud", dir} },
			want: "予期せぬエラーが発生しました\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearPublisherEnv(t)
			dir := t.TempDir()
			tt.setup(t, dir)

			stdout, _ := execute(t, tt.args(dir)...)
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
			if _, err := os.Stat(filepath.Join(dir, "branch.out")); !os.IsNotExist(err) {
				t.Errorf("expected no branch.out after a failed run")
			}
		})
	}
}

func TestRootCmdLogsGoToStderr(t *testing.T) {
	clearPublisherEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "branch.lst", "001,Tokyo\n")

	stdout, stderr := execute(t, "--log-level", "debug", dir)
	if stdout != "" {
		t.Errorf("expected empty stdout, got %q", stdout)
	}
	if stderr == "" {
		t.Error("expected debug logs on stderr")
	}
}

func TestRootCmdFailureWritesNothingToStderr(t *testing.T) {
	clearPublisherEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "branch.lst", "12,Nagoya\n")

	stdout, stderr := execute(t, dir)
	if stdout != "支店定義ファイルのフォーマットが不正です\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if stderr != "" {
		t.Errorf("expected no diagnostics for a failed run, got %q", stderr)
	}
}

func TestRootCmdBadPublisherSettingsDoNotBlockRun(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"publish timeout below minimum", "PUBLISH_TIMEOUT", "500ms"},
		{"malformed AMQP URL", "AMQP_URL", "http://localhost:5672/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearPublisherEnv(t)
			t.Setenv(tt.key, tt.value)
			dir := t.TempDir()
			writeFile(t, dir, "branch.lst", "001,Tokyo\n")
			writeFile(t, dir, "00000001.rcd", "001\n250\n")

			stdout, _ := execute(t, dir)
			if stdout != "" {
				t.Errorf("expected no output on success, got %q", stdout)
			}
			got, err := os.ReadFile(filepath.Join(dir, "branch.out"))
			if err != nil {
				t.Fatalf("read branch.out: %v", err)
			}
			if string(got) != "001,Tokyo,250\n" {
				t.Errorf("unexpected branch.out %q", got)
			}
		})
	}
}
