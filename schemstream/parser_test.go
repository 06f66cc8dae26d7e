// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/schemparse/schemparse/internal/container"
)

func TestNewRejectsUnknownExtension(t *testing.T) {
	if _, err := New("weird.xyz", nil); err == nil {
		t.Fatal("New() with an unrecognised extension should fail")
	}
}

func TestNewClassifiesByExtension(t *testing.T) {
	p, err := New("project.olb", nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if p.kind != FileTypeLibrary {
		t.Fatalf("New().kind = %v; want FileTypeLibrary", p.kind)
	}
}

// fixtureExtractor adapts container.TestExtractor but lets the test assert
// the scratch directory handed to Extract actually exists by the time it's
// called.
type fixtureExtractor struct {
	archivePath string
	sawDir      string
}

func (f *fixtureExtractor) Extract(containerPath, outDir string) (string, error) {
	f.sawDir = outDir
	if _, err := os.Stat(outDir); err != nil {
		return "", err
	}
	return (container.TestExtractor{}).Extract(containerPath, filepath.Join(outDir, "root"))
}

func writeMinimalLibraryArchive(t *testing.T, path string) {
	t.Helper()
	if err := container.WriteFixture(path, minimalLibraryFixture()); err != nil {
		t.Fatalf("WriteFixture() error: %v", err)
	}
}

func TestParseRequiresExtractor(t *testing.T) {
	p, err := New("project.olb", nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := p.Parse("project.olb"); err == nil {
		t.Fatal("Parse() without an Extractor should fail")
	}
}

func TestParseCleansUpScratchDirOnSuccess(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fixture.ar")
	writeMinimalLibraryArchive(t, archivePath)

	scratchParent := filepath.Join(dir, "scratch")
	extractor := &fixtureExtractor{archivePath: archivePath}
	p, err := New("project.olb", &Options{Extractor: extractor, ScratchDir: scratchParent})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	lib, err := p.Parse(archivePath)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if lib.FileErrCtr != 0 {
		t.Fatalf("Parse() FileErrCtr = %d; want 0", lib.FileErrCtr)
	}
	if extractor.sawDir == "" {
		t.Fatal("Parse() never invoked the extractor")
	}
	if _, err := os.Stat(extractor.sawDir); !os.IsNotExist(err) {
		t.Fatalf("Parse() left scratch dir %s behind: %v", extractor.sawDir, err)
	}
}

func TestParseKeepsScratchDirWhenRequested(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fixture.ar")
	writeMinimalLibraryArchive(t, archivePath)

	scratchParent := filepath.Join(dir, "scratch")
	extractor := &fixtureExtractor{archivePath: archivePath}
	p, err := New("project.olb", &Options{
		Extractor:      extractor,
		ScratchDir:     scratchParent,
		KeepScratchDir: true,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, err := p.Parse(archivePath); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, err := os.Stat(extractor.sawDir); err != nil {
		t.Fatalf("Parse() should have kept scratch dir: %v", err)
	}
}

func TestParsePropagatesExtractorFailure(t *testing.T) {
	p, err := New("project.olb", &Options{Extractor: container.TestExtractor{}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := p.Parse(filepath.Join(t.TempDir(), "absent.ar")); err == nil {
		t.Fatal("Parse() of a missing container should fail")
	}
}

func TestCloseBeforeParseIsANoop(t *testing.T) {
	p, err := New("project.olb", nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() before Parse() error: %v", err)
	}
}

func TestSummaryReportsCleanAndFailingFiles(t *testing.T) {
	clean := &Library{FileCtr: 3, FileErrCtr: 0}
	if got, want := clean.Summary(), "3/3 files parsed cleanly"; got != want {
		t.Fatalf("Summary() = %q; want %q", got, want)
	}

	failing := &Library{FileCtr: 3, FileErrCtr: 1}
	if got, want := failing.Summary(), "Errors in 1/3 files!"; got != want {
		t.Fatalf("Summary() = %q; want %q", got, want)
	}
}
