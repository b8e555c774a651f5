// Package cmd provides the CLI commands for addoncatalog.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"addon-catalog/internal/config"
	"addon-catalog/internal/logging"
	"addon-catalog/internal/version"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "addoncatalog",
	Short: "Download and analyze a vendor add-on catalog",
	Long: `addoncatalog downloads a vendor add-on catalog, parses it, and
computes aggregate statistics: platform, OS and architecture counts,
latest version per product, and monthly release distributions.

Examples:
  addoncatalog analyze
  addoncatalog analyze --format json
  addoncatalog analyze --url https://example.com/catalog.xml --cache /tmp/catalog.xml`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON or HCL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "addoncatalog version %s\n", version.Version)
	},
}
