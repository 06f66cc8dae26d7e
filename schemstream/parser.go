// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schemparse/schemparse/internal/envcfg"
	"github.com/schemparse/schemparse/internal/log"
)

// ContainerExtractor is the out-of-scope compound-container collaborator's
// contract (§1, §6): given a container file path and a scratch output
// directory, it produces a root directory holding the stream tree
// described in §3. This core never implements the extractor itself; it
// only consumes whatever directory the extractor produced.
type ContainerExtractor interface {
	Extract(containerPath, outDir string) (rootDir string, err error)
}

// Options configures a Parser, mirroring the teacher's pe.Options shape
// (§9's ambient-stack instruction to keep the teacher's configuration
// style).
type Options struct {
	// Extractor produces the extracted stream tree from a container file.
	// Required; the parser does not open compound containers itself.
	Extractor ContainerExtractor

	// ScratchDir is the parent directory under which a unique, per-Parser
	// extraction directory is created (§5, §9 "strong-randomness nonce").
	// Defaults to $SCHEMPARSE_SCRATCH_DIR when set, else os.TempDir().
	ScratchDir string

	// KeepScratchDir disables removal of the extraction directory, both
	// when Parse returns and on Close, useful for debugging a parse.
	// SCHEMPARSE_KEEP_SCRATCH has the same effect when this is false.
	KeepScratchDir bool

	// Logger overrides the default stderr logger filtered at LevelError.
	Logger log.Logger
}

// Parser owns one parsing session's extraction directory lifetime and
// accumulates the results into a single Library (§5 "A parsing session
// owns: one Library..., one DataStream..., one FutureData stack..."). A
// Parser is not safe for concurrent use by multiple goroutines; embedding
// callers run many Parser instances in parallel across files instead
// (§5's "each instance must have its own unique extraction directory").
type Parser struct {
	opts       *Options
	logger     *log.Helper
	scratchDir string
	kind       FileType
}

// New creates a Parser for containerPath, classifying it by extension
// per §6. The extraction directory is created lazily by Parse.
func New(containerPath string, opts *Options) (*Parser, error) {
	kind, err := FileTypeFromExtension(filepath.Ext(containerPath))
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}
	p := &Parser{opts: opts, kind: kind}

	var logger log.Logger
	if opts.Logger == nil {
		logger = log.NewStdLogger(os.Stderr)
		p.logger = log.NewHelper(log.NewFilter(logger, log.FilterLevel(envcfg.LogLevel())))
	} else {
		p.logger = log.NewHelper(opts.Logger)
	}
	return p, nil
}

// scratchNonce returns a 128-bit random hex identifier used to name the
// per-Parser extraction directory, avoiding collisions under parallel
// callers (§5, §9).
func scratchNonce() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

// Parse extracts containerPath via opts.Extractor into a freshly created,
// uniquely named scratch directory, walks the resulting tree, and returns
// the assembled Library. Unless KeepScratchDir or SCHEMPARSE_KEEP_SCRATCH
// is set, the scratch directory is removed on every exit path once Parse
// returns, per §5's "guaranteed removal on all exit paths".
func (p *Parser) Parse(containerPath string) (*Library, error) {
	if p.opts.Extractor == nil {
		return nil, fmt.Errorf("schemstream: Options.Extractor is required (the compound-container extractor is an external collaborator, see spec §1/§6)")
	}

	nonce, err := scratchNonce()
	if err != nil {
		return nil, err
	}
	base := p.opts.ScratchDir
	if base == "" {
		base = envcfg.ScratchDir(os.TempDir())
	}
	p.scratchDir = filepath.Join(base, "schemstream-"+nonce)
	if err := os.MkdirAll(p.scratchDir, 0o755); err != nil {
		return nil, err
	}
	defer p.cleanup()

	root, err := p.opts.Extractor.Extract(containerPath, p.scratchDir)
	if err != nil {
		return nil, err
	}

	lib, err := AssembleLibrary(root, p.kind, p.logger)
	if err != nil {
		return nil, err
	}
	return lib, nil
}

func (p *Parser) keepScratchDir() bool {
	return p.opts.KeepScratchDir || envcfg.KeepScratchDir()
}

func (p *Parser) cleanup() {
	if p.keepScratchDir() || p.scratchDir == "" {
		return
	}
	if err := os.RemoveAll(p.scratchDir); err != nil {
		p.logger.Errorf("removing scratch dir %s: %v", p.scratchDir, err)
	}
}

// Close removes the Parser's scratch directory if one remains and keeping
// it is not requested. Before Parse has created a directory, Close does
// nothing.
func (p *Parser) Close() error {
	if p.scratchDir == "" || p.keepScratchDir() {
		return nil
	}
	return os.RemoveAll(p.scratchDir)
}

// Summary renders the "Errors in N/M files!" line from §7's user-visible
// output contract, or "M/M files parsed cleanly" when no stream failed. The ANSI colouring itself lives in
// cmd/schemdump (ambient CLI stack); this returns the plain-text form so
// library callers aren't forced into a terminal dependency.
func (lib *Library) Summary() string {
	if lib.FileErrCtr == 0 {
		return fmt.Sprintf("%d/%d files parsed cleanly", lib.FileCtr, lib.FileCtr)
	}
	return fmt.Sprintf("Errors in %d/%d files!", lib.FileErrCtr, lib.FileCtr)
}
