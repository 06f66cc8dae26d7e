// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/schemparse/schemparse/internal/baseline"
	schemstream "github.com/schemparse/schemparse/schemstream"
)

var (
	wantPackages   bool
	wantSymbols    bool
	wantSchematics bool
	wantPages      bool
	wantAdminData  bool
	baselinePath   string
)

func prettyPrint(buf []byte) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf, "", "\t"); err != nil {
		return string(buf)
	}
	return pretty.String()
}

// preExtracted implements schemstream.ContainerExtractor for a container
// path that already points at an extracted stream tree (§1's real
// compound-container extractor is an external collaborator; this driver
// does not attempt to open raw .OLB/.DSN containers itself).
type preExtracted struct{}

func (preExtracted) Extract(containerPath, outDir string) (string, error) {
	info, err := os.Stat(containerPath)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("schemdump: %s is not an already-extracted container directory; "+
			"wire a real compound-container extractor via schemstream.Options.Extractor to open raw containers", containerPath)
	}
	return containerPath, nil
}

func dump(cmd *cobra.Command, args []string) *schemstream.Library {
	path := args[0]

	parser, err := schemstream.New(path, &schemstream.Options{Extractor: preExtracted{}})
	if err != nil {
		log.Printf("opening %s: %v", path, err)
		return nil
	}
	defer parser.Close()

	lib, err := parser.Parse(path)
	if err != nil {
		log.Printf("parsing %s: %v", path, err)
		return nil
	}

	if wantAdminData {
		b, _ := json.Marshal(lib.AdminData)
		fmt.Println(prettyPrint(b))
	}
	if wantPackages {
		b, _ := json.Marshal(lib.Packages)
		fmt.Println(prettyPrint(b))
	}
	if wantSymbols {
		b, _ := json.Marshal(lib.Symbols)
		fmt.Println(prettyPrint(b))
	}
	if wantSchematics {
		b, _ := json.Marshal(lib.Schematics)
		fmt.Println(prettyPrint(b))
	}
	if wantPages {
		b, _ := json.Marshal(lib.Pages)
		fmt.Println(prettyPrint(b))
	}

	return lib
}

// checkBaseline implements the §7/§8 black-box regression rule: a stream's
// failure count may only decrease across runs. It loads baselinePath (if
// set), compares, prints any regressions in red, then tightens and
// re-saves the baseline.
func checkBaseline(libs []*schemstream.Library) {
	if baselinePath == "" {
		return
	}
	b, err := baseline.Load(baselinePath)
	if err != nil {
		log.Printf("loading baseline %s: %v", baselinePath, err)
		return
	}
	observed := map[string]int{}
	for _, lib := range libs {
		if lib == nil {
			continue
		}
		for stream, streamErr := range lib.StreamErrors {
			if streamErr != nil {
				observed[stream]++
			}
		}
	}
	for _, reg := range b.Check(observed) {
		color.New(color.FgRed).Printf("regression: %s\n", reg.Error())
	}
	b.Update(observed)
	if err := b.Save(baselinePath); err != nil {
		log.Printf("saving baseline %s: %v", baselinePath, err)
	}
}

func printSummary(libs []*schemstream.Library) {
	total, errs := 0, 0
	for _, lib := range libs {
		if lib == nil {
			continue
		}
		total += lib.FileCtr
		errs += lib.FileErrCtr
	}
	line := fmt.Sprintf("Errors in %d/%d files!", errs, total)
	if errs == 0 {
		color.New(color.FgGreen).Println(line)
	} else {
		color.New(color.FgRed, color.Bold).Println(line)
	}
}

func parse(cmd *cobra.Command, args []string) {
	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		log.Printf("%s: %v", target, err)
		return
	}

	var libs []*schemstream.Library
	if !info.IsDir() {
		libs = append(libs, dump(cmd, args))
	} else {
		entries, err := os.ReadDir(target)
		if err != nil {
			log.Printf("%s: %v", target, err)
			return
		}
		for _, e := range entries {
			if e.IsDir() {
				libs = append(libs, dump(cmd, []string{filepath.Join(target, e.Name())}))
			}
		}
	}

	printSummary(libs)
	checkBaseline(libs)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "schemdump",
		Short: "An EDA schematic/library container stream parser",
		Long:  "schemdump materialises the typed object tree of an extracted .OLB/.OBK/.DSN/.DBK container tree.",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("schemdump version 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [path]",
		Short: "Parse an already-extracted container tree and dump selected streams",
		Args:  cobra.ExactArgs(1),
		Run:   parse,
	}
	dumpCmd.Flags().BoolVar(&wantPackages, "packages", false, "dump parsed packages")
	dumpCmd.Flags().BoolVar(&wantSymbols, "symbols", false, "dump parsed symbols")
	dumpCmd.Flags().BoolVar(&wantSchematics, "schematics", false, "dump parsed schematics")
	dumpCmd.Flags().BoolVar(&wantPages, "pages", false, "dump parsed pages")
	dumpCmd.Flags().BoolVar(&wantAdminData, "admindata", false, "dump admin data")
	dumpCmd.Flags().StringVar(&baselinePath, "baseline", "", "regression baseline TOML file (failure counts may decrease but never increase)")

	rootCmd.AddCommand(versionCmd, dumpCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
