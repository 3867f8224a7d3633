// CLI tool that checks every content catalog in a directory covers every
// variant key the selector can emit.
// Usage: go run ./cmd/lint-content [dir] (defaults to internal/content)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"lg/wellness-coach-go-api/internal/content"
)

func main() {
	dir := filepath.Join("internal", "content")
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil || len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No catalog files found in %s\n", dir)
		os.Exit(1)
	}
	sort.Strings(files)

	failed := 0
	for _, f := range files {
		filename := filepath.Base(f)
		problems := lintFile(f)
		if len(problems) > 0 {
			fmt.Printf("  FAIL: %s\n", filename)
			for _, p := range problems {
				fmt.Printf("    %s\n", p)
			}
			failed++
			continue
		}
		fmt.Printf("  ok: %s\n", filename)
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d catalog(s) failed.\n", failed, len(files))
		os.Exit(1)
	}
	fmt.Printf("\n%d catalog(s) complete.\n", len(files))
}

// lintFile loads one catalog and lists every problem found: a parse error or
// each variant it lacks text for.
func lintFile(path string) []string {
	c, err := content.LoadFile(path)
	if err != nil {
		return []string{err.Error()}
	}
	var problems []string
	for _, k := range c.MissingKeys() {
		problems = append(problems, "missing: "+string(k))
	}
	return problems
}
