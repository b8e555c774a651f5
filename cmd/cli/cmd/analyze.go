// Package cmd - analyze command
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"addon-catalog/adapters/fetch"
	"addon-catalog/core/analysis"
	"addon-catalog/core/output"
	"addon-catalog/core/parser"
	"addon-catalog/internal/config"
	"addon-catalog/internal/logging"
)

var (
	catalogURL   string
	cachePath    string
	outputFormat string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fetch the catalog and print its summary",
	Long: `Download the catalog XML, parse it, and print aggregate statistics.

Examples:
  addoncatalog analyze
  addoncatalog analyze --format json
  addoncatalog analyze --url https://example.com/catalog.xml`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&catalogURL, "url", "u", "", "catalog XML URL (default from config)")
	analyzeCmd.Flags().StringVarP(&cachePath, "cache", "c", "", "destination path for downloaded XML (default from config)")
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	url := catalogURL
	if url == "" {
		url = cfg.CatalogURL
	}
	cache := cachePath
	if cache == "" {
		cache = cfg.CachePath
	}

	formatter, err := output.New(output.Format(outputFormat))
	if err != nil {
		return err
	}

	fetch.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	logging.Info("fetching catalog", zap.String("url", url), zap.String("cache", cache))
	dest, err := fetch.Catalog(context.Background(), url, cache)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		return fmt.Errorf("failed to read catalog cache: %w", err)
	}

	addons, err := parser.Parse(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}
	logging.Info("parsed catalog", zap.Int("addons", len(addons)))

	report := &output.Report{
		Summary:     analysis.Summarize(addons),
		CatalogPath: dest,
		URL:         url,
	}
	return formatter.Render(cmd.OutOrStdout(), report)
}
