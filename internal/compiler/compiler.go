// Package compiler drives the per-file pipeline: parse a template, rewrite
// If/Else pairs into conditional expressions, print the result next to the
// source file.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/recera/condex/internal/cache"
	"github.com/recera/condex/pkg/rewrite"
	"github.com/recera/condex/pkg/vexml"
)

// DefaultSuffix replaces the source extension on output files.
const DefaultSuffix = ".out.vex"

// Options configures file processing.
type Options struct {
	// OutputSuffix replaces the source file extension; DefaultSuffix when
	// empty.
	OutputSuffix string

	// Cache, when set, is consulted to skip recompiling unchanged sources.
	Cache *cache.Cache
}

// Compile transforms one template source. One rewriter per file; no state
// is shared across invocations, so callers may compile files in parallel.
func Compile(filename string, source []byte) ([]byte, error) {
	doc, err := vexml.ParseFile(filename, string(source))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	out, err := rewrite.New(filename).Rewrite(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite template: %w", err)
	}

	return []byte(vexml.Print(out)), nil
}

// OutputPath returns the output file for a template source.
func OutputPath(path, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// ProcessFile compiles one template file to its output path. It reports
// whether the file was actually compiled (false means the cached output was
// reused).
func ProcessFile(path string, opts Options) (bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}

	outputFile := OutputPath(path, opts.OutputSuffix)

	key := cache.Key("template", path, string(source))
	if opts.Cache != nil {
		if data, ok := opts.Cache.Get(key); ok {
			if err := os.WriteFile(outputFile, data, 0644); err != nil {
				return false, fmt.Errorf("failed to write output file: %w", err)
			}
			return false, nil
		}
	}

	output, err := Compile(path, source)
	if err != nil {
		return false, err
	}

	if err := os.WriteFile(outputFile, output, 0644); err != nil {
		return false, fmt.Errorf("failed to write output file: %w", err)
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, output, path); err != nil {
			// Cache failures never fail the build.
			fmt.Fprintf(os.Stderr, "Warning: failed to cache %s: %v\n", path, err)
		}
	}

	return true, nil
}

// ProcessDirectory compiles every template under dir with one of the given
// extensions, returning the number of files processed.
func ProcessDirectory(dir string, extensions []string, opts Options) (int, error) {
	if len(extensions) == 0 {
		extensions = []string{".vex"}
	}
	outSuffix := opts.OutputSuffix
	if outSuffix == "" {
		outSuffix = DefaultSuffix
	}

	var templateFiles []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, outSuffix) {
			// Never recompile our own output.
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(path, ext) {
				templateFiles = append(templateFiles, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to find template files: %w", err)
	}

	for _, file := range templateFiles {
		if _, err := ProcessFile(file, opts); err != nil {
			return 0, fmt.Errorf("failed to process %s: %w", file, err)
		}
	}

	return len(templateFiles), nil
}
