// Package container is a read-only test double for the out-of-scope
// compound-container extractor (§1, §6): it never ships in production (a
// real container extractor is always supplied via schemstream.Options as
// an external collaborator), but the module's own tests need *some* way to
// assemble an extracted stream tree from a single fixture file on disk.
//
// Grounded on holocm-holo-build's use of github.com/blakesmith/ar for
// reading ar archives (src/dump-package/impl/archive.go): a fixture
// archive is a plain Unix `ar` archive whose member names are
// "/"-separated relative paths ("Symbols/U1.bin", "Graphics/$Types$.bin",
// ...), which TestExtractor unpacks into a directory tree matching §3's
// expected layout.
package container

import (
	"io"
	"os"
	"path/filepath"

	"github.com/blakesmith/ar"
)

// TestExtractor implements schemstream.ContainerExtractor by unpacking an
// ar archive of named streams into outDir, flattening "/" in member names
// into nested directories.
type TestExtractor struct{}

// Extract unpacks the ar archive at containerPath into outDir and returns
// outDir as the root directory.
func (TestExtractor) Extract(containerPath, outDir string) (string, error) {
	f, err := os.Open(containerPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r := ar.NewReader(f)
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		dest := filepath.Join(outDir, filepath.FromSlash(header.Name))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return "", err
		}
		out, err := os.Create(dest)
		if err != nil {
			return "", err
		}
		if _, err := io.CopyN(out, r, header.Size); err != nil && err != io.EOF {
			out.Close()
			return "", err
		}
		out.Close()
	}
	return outDir, nil
}

// WriteFixture builds an ar archive at archivePath from a set of named
// in-memory streams, for use by _test.go files that need a whole extracted
// tree rather than a single stream buffer.
func WriteFixture(archivePath string, streams map[string][]byte) error {
	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := ar.NewWriter(f)
	if err := w.WriteGlobalHeader(); err != nil {
		return err
	}
	for name, data := range streams {
		if err := w.WriteHeader(&ar.Header{
			Name: filepath.ToSlash(name),
			Size: int64(len(data)),
			Mode: 0o644,
		}); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}
