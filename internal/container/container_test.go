package container

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFixtureThenExtractRoundTrip(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fixture.ar")
	streams := map[string][]byte{
		"Library.bin":              {0x00, 0x00, 0x00, 0x00},
		"Symbols/$Types$.bin":      {0x00, 0x00},
		"Graphics/$Types$.bin":     {0x00, 0x00},
	}
	if err := WriteFixture(archivePath, streams); err != nil {
		t.Fatalf("WriteFixture() error: %v", err)
	}

	outDir := filepath.Join(dir, "extracted")
	root, err := TestExtractor{}.Extract(archivePath, outDir)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if root != outDir {
		t.Fatalf("Extract() root = %q; want %q", root, outDir)
	}

	got, err := os.ReadFile(filepath.Join(outDir, "Library.bin"))
	if err != nil {
		t.Fatalf("reading extracted Library.bin: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Library.bin length = %d; want 4", len(got))
	}

	if _, err := os.Stat(filepath.Join(outDir, "Symbols", "$Types$.bin")); err != nil {
		t.Fatalf("nested member not unpacked: %v", err)
	}
}

func TestExtractMissingArchive(t *testing.T) {
	_, err := TestExtractor{}.Extract(filepath.Join(t.TempDir(), "absent.ar"), t.TempDir())
	if err == nil {
		t.Fatal("Extract() of a missing archive should fail")
	}
}
