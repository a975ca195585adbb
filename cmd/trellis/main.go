// Command trellis evaluates a Trellis Lisp script and writes the resulting
// meshes as binary STL files.
//
// Usage:
//
//	trellis [-out dir] script.trellis
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/trellis/pkg/engine"
	"github.com/chazu/trellis/pkg/export"
	"github.com/chazu/trellis/pkg/pipeline"
)

func main() {
	outDir := flag.String("out", ".", "directory to write STL files into")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: trellis [-out dir] script.trellis")
		os.Exit(2)
	}
	scriptPath := flag.Arg(0)

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		log.Fatalf("reading script: %v", err)
	}

	eng := engine.NewEngine()
	p, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		log.Fatalf("evaluation failed: %v", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", scriptPath, e.Error())
		}
		os.Exit(1)
	}

	for _, f := range pipeline.Validate(p) {
		if f.Severity == pipeline.SeverityWarning {
			fmt.Fprintf(os.Stderr, "%s: %s\n", scriptPath, f.Error())
		}
	}

	meshes, err := pipeline.Evaluate(p)
	if err != nil {
		log.Fatalf("evaluating pipeline: %v", err)
	}
	if len(meshes) == 0 {
		log.Fatalf("%s declares no outputs; add (output ...) forms", scriptPath)
	}

	base := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
	for i, g := range meshes {
		name := fmt.Sprintf("%s_%d.stl", base, i)
		if len(meshes) == 1 {
			name = base + ".stl"
		}
		path := filepath.Join(*outDir, name)
		if err := export.SaveSTL(path, g); err != nil {
			log.Fatalf("writing %s: %v", path, err)
		}
		log.Printf("wrote %s (%d faces)", path, len(g.Faces()))
	}
}
