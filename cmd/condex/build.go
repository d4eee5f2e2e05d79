package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/recera/condex/cmd/condex/internal/config"
	"github.com/recera/condex/internal/cache"
	"github.com/recera/condex/internal/compiler"
	"github.com/spf13/cobra"
)

func newBuildCommand() *cobra.Command {
	var (
		directory  string
		verbose    bool
		noCache    bool
		clearCache bool
	)

	cmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "Rewrite If/Else conditionals in VEX template files",
		Long: `Compile VEX template files, rewriting <If>/<Else> pairs into ternary
conditional expressions.

If no files are specified, searches the directories configured in
condex.yml (or the defaults) for template files.

Examples:
  condex build                       # Compile all templates
  condex build app/routes/home.vex   # Compile specific file
  condex build --dir ./templates     # Compile all in directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime := time.Now()

			cfg, err := config.Load(".")
			if err != nil {
				log.Printf("⚠️  Failed to load %s: %v (using defaults)\n", config.ConfigFile, err)
				cfg = config.DefaultConfig()
			}

			opts := compiler.Options{OutputSuffix: cfg.OutputSuffix}
			if cfg.Cache != nil && cfg.Cache.Enabled {
				buildCache, err := cache.New(cache.Config{Dir: cfg.Cache.Dir})
				if err != nil {
					log.Printf("⚠️  Failed to initialize compile cache: %v", err)
				} else {
					if clearCache {
						if err := buildCache.Clear(); err != nil {
							log.Printf("⚠️  Failed to clear compile cache: %v", err)
						}
					}
					if !noCache {
						opts.Cache = buildCache
					}
				}
			}

			// If specific files provided, compile them.
			if len(args) > 0 {
				for _, file := range args {
					if verbose {
						fmt.Printf("📝 Compiling %s...\n", file)
					}
					compiled, err := compiler.ProcessFile(file, opts)
					if err != nil {
						return fmt.Errorf("failed to compile %s: %w", file, err)
					}
					if verbose && !compiled {
						fmt.Printf("⚡ Reused cached output for %s\n", file)
					}
				}
				fmt.Printf("✨ Compiled %d templates in %v\n", len(args), time.Since(startTime))
				return nil
			}

			searchDirs := cfg.SourceDirs
			if directory != "" {
				searchDirs = []string{directory}
			}

			totalCompiled := 0
			for _, dir := range searchDirs {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					continue
				}
				if verbose {
					fmt.Printf("🔍 Searching %s for templates...\n", dir)
				}
				count, err := compiler.ProcessDirectory(dir, cfg.Extensions, opts)
				if err != nil {
					return fmt.Errorf("failed to walk directory %s: %w", dir, err)
				}
				totalCompiled += count
			}

			if totalCompiled == 0 {
				fmt.Println("ℹ️  No template files found")
			} else {
				fmt.Printf("✨ Compiled %d templates in %v\n", totalCompiled, time.Since(startTime))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&directory, "dir", "d", "", "Directory to search for template files")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the compile cache")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Clear the compile cache before building")

	return cmd
}
