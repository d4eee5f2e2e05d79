package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/recera/condex/cmd/condex/internal/config"
	"github.com/recera/condex/cmd/condex/internal/ui"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var useDefaults bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a condex.yml configuration file",
		Long: `Creates a condex.yml in the current directory. Runs an interactive form
by default; pass --defaults to write the default configuration directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := filepath.Join(".", config.ConfigFile)
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", config.ConfigFile)
			}

			var cfg *config.Config
			if useDefaults {
				cfg = config.DefaultConfig()
			} else {
				var err error
				cfg, err = ui.RunInitTUI()
				if err != nil {
					return err
				}
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(cfg, "."); err != nil {
				return fmt.Errorf("failed to write %s: %w", config.ConfigFile, err)
			}

			fmt.Printf("✨ Created %s\n", config.ConfigFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Write the default configuration without prompting")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing condex.yml")

	return cmd
}
