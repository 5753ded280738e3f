// Command tinydb-dump writes an lz4-framed snapshot of a tinydb data
// directory's catalog-registered relations to stdout or a file, a
// pg_dump-style companion to cmd/tinydb.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tinydb/engine/internal/buffer"
	"github.com/tinydb/engine/internal/catalog"
	"github.com/tinydb/engine/internal/catalog/dump"
	"github.com/tinydb/engine/internal/oid"
)

func main() {
	var dataDir, outPath string
	flag.StringVar(&dataDir, "data-dir", "./data", "data directory to snapshot")
	flag.StringVar(&outPath, "out", "", "output file (default: stdout)")
	flag.Parse()

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tinydb-dump: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	pool := buffer.New(16)
	cat, err := catalog.Open(dataDir, pool, oid.TinydbDatabase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tinydb-dump: opening catalog: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	if err := dump.Write(dataDir, cat, out); err != nil {
		fmt.Fprintf(os.Stderr, "tinydb-dump: %v\n", err)
		os.Exit(1)
	}
}
