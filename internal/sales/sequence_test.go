package sales

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sales/internal/core"
)

func TestDiscoverSequential(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"00000002.rcd", "00000001.rcd", "00000003.rcd"} {
		mustWrite(t, dir, name, "001\n1\n")
	}
	// Ignored: wrong width, wrong extension, extra suffix, directories.
	mustWrite(t, dir, "0000004.rcd", "")
	mustWrite(t, dir, "00000009.txt", "")
	mustWrite(t, dir, "00000009.rcd.bak", "")
	mustWrite(t, dir, "00000009xrcd", "")
	mustWrite(t, dir, "branch.lst", "001,Tokyo\n")
	if err := os.Mkdir(filepath.Join(dir, "00000010.rcd"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := DiscoverSequential(testContext(), dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	want := []string{"00000001.rcd", "00000002.rcd", "00000003.rcd"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverSequentialTrivial(t *testing.T) {
	dir := t.TempDir()
	got, err := DiscoverSequential(testContext(), dir)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no records, got %v (err=%v)", got, err)
	}

	mustWrite(t, dir, "00000042.rcd", "001\n1\n")
	got, err = DiscoverSequential(testContext(), dir)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected one record, got %v (err=%v)", got, err)
	}
}

func TestDiscoverSequentialGaps(t *testing.T) {
	cases := []struct {
		name  string
		files []string
		file  string
	}{
		{"gap at two", []string{"00000001.rcd", "00000003.rcd"}, "00000003.rcd"},
		{"gap later", []string{"00000005.rcd", "00000006.rcd", "00000008.rcd"}, "00000008.rcd"},
		{"large jump", []string{"00000001.rcd", "99999999.rcd"}, "99999999.rcd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tc.files {
				mustWrite(t, dir, name, "001\n1\n")
			}
			_, err := DiscoverSequential(testContext(), dir)
			e := assertKind(t, err, core.KindNonSequentialFiles)
			if e.File != tc.file {
				t.Fatalf("expected gap reported at %s, got %s", tc.file, e.File)
			}
		})
	}
}

func TestDiscoverSequentialDoesNotReadRecords(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, dir, "00000001.rcd", "001\n1\n")
	mustWrite(t, dir, "00000003.rcd", "001\n1\n")
	// An unreadable record must not matter: sequence checks only look at names.
	if err := os.Chmod(filepath.Join(dir, "00000001.rcd"), 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(filepath.Join(dir, "00000001.rcd"), 0o644) })

	_, err := DiscoverSequential(testContext(), dir)
	assertKind(t, err, core.KindNonSequentialFiles)
}

func TestDiscoverSequentialMissingDirectory(t *testing.T) {
	_, err := DiscoverSequential(testContext(), filepath.Join(t.TempDir(), "missing"))
	assertKind(t, err, core.KindUnknown)
}
