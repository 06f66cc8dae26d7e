// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import (
	"os"
	"path/filepath"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/schemparse/schemparse/internal/log"
)

// Library is the root of the typed object tree materialised from one
// extracted container (§3 "Library (root)"). Streams accumulate into it
// left-to-right as §4.8 walks the container tree; any stream that fails to
// parse is skipped, counted in FileErrCtr and recorded in StreamErrors
// without aborting the run (§7 "Propagation"). Only failures of package,
// symbol, schematic, hierarchy and page streams are also logged.
type Library struct {
	Kind FileType

	Strings     StringTable
	TextFonts   []string
	GraphicsTypes []TypesEntry
	SymbolsTypes  []TypesEntry

	AdminData        *AdminData
	NetBundleMapData *NetBundleMapData
	HSObjects        *HSObjects
	Cache            *Cache

	Packages   map[string]Package
	Symbols    map[string]Symbol
	Schematics map[string]Schematic
	Pages      map[string]Page

	FileCtr    int
	FileErrCtr int
	StreamErrors map[string]error
	Diagnostics  []Diagnostic
}

func newLibrary(kind FileType) *Library {
	return &Library{
		Kind:         kind,
		Packages:     map[string]Package{},
		Symbols:      map[string]Symbol{},
		Schematics:   map[string]Schematic{},
		Pages:        map[string]Page{},
		StreamErrors: map[string]error{},
	}
}

// requiredLibraryEntries and optionalLibraryEntries describe the container-tree
// expectations of §3/§6. AssembleLibrary asserts the required set and
// treats the optional set's absence as benign.
var requiredLibraryEntries = []string{
	"Library.bin",
	"Cache.bin",
	"ExportBlocks Directory.bin",
	"Graphics Directory.bin",
	filepath.Join("Graphics", "$Types$.bin"),
	"Packages Directory.bin",
	"Parts Directory.bin",
	"Symbols Directory.bin",
	filepath.Join("Symbols", "$Types$.bin"),
	"Views Directory.bin",
}

var optionalLibraryEntries = []string{
	"AdminData.bin",
	"NetBundleMapData.bin",
	"HSObjects.bin",
	"Cells Directory.bin",
}

// AssembleLibrary walks root (an already-extracted container tree per §3)
// and populates a Library in a fixed order: it first checks that every
// required entry exists, then parses AdminData/NetBundleMapData/HSObjects,
// Cache, graphics- and symbol-Types, the Library stream itself, then each
// package, symbol, schematic, hierarchy, and page. The "... Directory.bin"
// streams are checked for existence only; their contents are not parsed.
func AssembleLibrary(root string, kind FileType, logger *log.Helper) (*Library, error) {
	if logger == nil {
		logger = log.NewHelper(log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelError)))
	}
	lib := newLibrary(kind)

	for _, rel := range requiredLibraryEntries {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			return nil, &FilesystemMissing{Path: rel}
		}
	}

	pc := &parseContext{version: DefaultFileFormatVersion}

	if data, ok := readOptionalStream(root, "AdminData.bin", lib, logger); ok {
		ds := NewDataStream(data)
		ad, err := parseAdminDataStream(ds)
		lib.recordResult("AdminData.bin", err)
		if err == nil {
			lib.AdminData = &ad
		}
	}

	if data, ok := readOptionalStream(root, "NetBundleMapData.bin", lib, logger); ok {
		ds := NewDataStream(data)
		nb, err := parseNetBundleMapDataStream(ds)
		lib.recordResult("NetBundleMapData.bin", err)
		if err == nil {
			lib.NetBundleMapData = &nb
		}
	}

	if data, ok := readOptionalStream(root, "HSObjects.bin", lib, logger); ok {
		ds := NewDataStream(data)
		hs, err := parseHSObjectsStream(ds)
		lib.recordResult("HSObjects.bin", err)
		if err == nil {
			lib.HSObjects = &hs
		}
	}

	if data, err := readStream(root, "Cache.bin"); err == nil {
		ds := NewDataStream(data)
		c, perr := parseCacheStream(ds)
		lib.recordResult("Cache.bin", perr)
		if perr == nil {
			lib.Cache = &c
		}
	}

	graphicsTypesPath := filepath.Join("Graphics", "$Types$.bin")
	if data, err := readStream(root, graphicsTypesPath); err == nil {
		ds := NewDataStream(data)
		entries, perr := parseTypesStream(ds)
		lib.recordResult(graphicsTypesPath, perr)
		if perr == nil {
			lib.GraphicsTypes = entries
		}
	}

	symbolsTypesPath := filepath.Join("Symbols", "$Types$.bin")
	if data, err := readStream(root, symbolsTypesPath); err == nil {
		ds := NewDataStream(data)
		entries, perr := parseTypesStream(ds)
		lib.recordResult(symbolsTypesPath, perr)
		if perr == nil {
			lib.SymbolsTypes = entries
		}
	}

	// Library.bin carries the global string and text-font tables that every
	// later stream's records reference by index (§3 "Library-wide
	// back-references").
	if data, err := readStream(root, "Library.bin"); err == nil {
		ds := NewDataStream(data)
		strs, fonts, perr := parseLibraryStream(ds)
		lib.recordResult("Library.bin", perr)
		if perr == nil {
			lib.Strings = StringTable{Entries: strs}
			lib.TextFonts = fonts
		}
	}
	pc.textFontTableLen = len(lib.TextFonts)

	if err := walkPackages(root, lib, pc, logger); err != nil {
		return lib, err
	}
	if err := walkSymbols(root, lib, pc, logger); err != nil {
		return lib, err
	}
	if err := walkViews(root, lib, pc, logger); err != nil {
		return lib, err
	}

	return lib, nil
}

func (lib *Library) recordResult(streamPath string, err error) {
	lib.FileCtr++
	if err != nil {
		lib.FileErrCtr++
		lib.StreamErrors[streamPath] = err
	}
}

func readStream(root, rel string) ([]byte, error) {
	f, err := os.Open(filepath.Join(root, rel))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(m))
	copy(out, m)
	_ = m.Unmap()
	return out, nil
}

func readOptionalStream(root, rel string, lib *Library, logger *log.Helper) ([]byte, bool) {
	data, err := readStream(root, rel)
	if err != nil {
		logger.Debugf("optional stream %s absent: %v", rel, err)
		return nil, false
	}
	return data, true
}

// parseLibraryStream reads Library.bin's global string table and text-font
// table. Layout: u32 string count, strings × zstr, u32 font count, fonts ×
// zstr.
func parseLibraryStream(ds *DataStream) ([]string, []string, error) {
	stringCount, err := ds.ReadU32()
	if err != nil {
		return nil, nil, err
	}
	strs := make([]string, stringCount)
	for i := range strs {
		if strs[i], err = ds.ReadStringZeroTerminated(); err != nil {
			return strs, nil, err
		}
	}
	fontCount, err := ds.ReadU32()
	if err != nil {
		return strs, nil, err
	}
	fonts := make([]string, fontCount)
	for i := range fonts {
		if fonts[i], err = ds.ReadStringZeroTerminated(); err != nil {
			return strs, fonts, err
		}
	}
	return strs, fonts, nil
}

func walkPackages(root string, lib *Library, pc *parseContext, logger *log.Helper) error {
	dir := filepath.Join(root, "Packages")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil // a missing Packages/ directory yields no packages (§8 scenario 1)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		rel := filepath.Join("Packages", e.Name())
		data, err := readStream(root, rel)
		if err != nil {
			lib.recordResult(rel, err)
			logger.Errorf("reading %s: %v", rel, err)
			continue
		}
		diag := &Diagnostics{}
		pkg, perr := parsePackageStream(NewDataStream(data), pc, diag)
		lib.recordResult(rel, perr)
		if perr != nil {
			logger.Errorf("parsing %s: %v", rel, perr)
			continue
		}
		lib.Packages[e.Name()] = pkg
	}
	return nil
}

func walkSymbols(root string, lib *Library, pc *parseContext, logger *log.Helper) error {
	dir := filepath.Join(root, "Symbols")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == "$Types$.bin" || e.Name() == "ERC.bin" {
			continue
		}
		rel := filepath.Join("Symbols", e.Name())
		data, err := readStream(root, rel)
		if err != nil {
			lib.recordResult(rel, err)
			logger.Errorf("reading %s: %v", rel, err)
			continue
		}
		diag := &Diagnostics{}
		sym, perr := parseSymbolStream(NewDataStream(data), pc, diag)
		lib.recordResult(rel, perr)
		if perr != nil {
			logger.Errorf("parsing %s: %v", rel, perr)
			continue
		}
		lib.Symbols[e.Name()] = sym
		if len(diag.Notes) > 0 {
			logger.Debugf("symbol %s notes: %v", e.Name(), diag.Notes)
		}
	}
	return nil
}

func walkViews(root string, lib *Library, pc *parseContext, logger *log.Helper) error {
	dir := filepath.Join(root, "Views")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		viewName := e.Name()

		schematicPath := filepath.Join("Views", viewName, "Schematic.bin")
		if data, err := readStream(root, schematicPath); err == nil {
			diag := &Diagnostics{}
			sch, perr := parseSchematicStream(NewDataStream(data), pc, diag)
			lib.recordResult(schematicPath, perr)
			if perr == nil {
				lib.Schematics[viewName] = sch
			} else {
				logger.Errorf("parsing %s: %v", schematicPath, perr)
			}
		}

		hierarchyPath := filepath.Join("Views", viewName, "Hierarchy", "Hierarchy.bin")
		if data, err := readStream(root, hierarchyPath); err == nil {
			h, perr := parseHierarchyStream(NewDataStream(data))
			lib.recordResult(hierarchyPath, perr)
			if perr != nil {
				logger.Errorf("parsing %s: %v", hierarchyPath, perr)
			} else if sch, ok := lib.Schematics[viewName]; ok {
				sch.Hierarchy = &h
				lib.Schematics[viewName] = sch
			}
		}

		pagesDir := filepath.Join(root, "Views", viewName, "Pages")
		pageEntries, err := os.ReadDir(pagesDir)
		if err != nil {
			continue
		}
		for _, pe := range pageEntries {
			if pe.IsDir() {
				continue
			}
			rel := filepath.Join("Views", viewName, "Pages", pe.Name())
			data, err := readStream(root, rel)
			if err != nil {
				lib.recordResult(rel, err)
				continue
			}
			diag := &Diagnostics{}
			page, perr := parsePageStream(NewDataStream(data), pc, diag)
			lib.recordResult(rel, perr)
			if perr != nil {
				logger.Errorf("parsing %s: %v", rel, perr)
				continue
			}
			lib.Pages[viewName+"/"+pe.Name()] = page
			if sch, ok := lib.Schematics[viewName]; ok {
				sch.Pages[pe.Name()] = page
				lib.Schematics[viewName] = sch
			}
		}
	}
	return nil
}
