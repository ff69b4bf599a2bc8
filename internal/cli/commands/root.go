// Package commands implements the benchtop CLI
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchtop-io/benchtop/internal/catalog"
	"github.com/benchtop-io/benchtop/internal/cli/config"
	"github.com/benchtop-io/benchtop/internal/registry"
)

var (
	// Global flags
	catalogPath  string
	outputFormat string
	noColor      bool
)

// NewRootCommand creates the benchtop root command
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "benchtop",
		Short: "Model registration and interface-component generation registry",
		Long: `Benchtop turns declarative model catalogs into a registry of generated
interface components: forms, tables, filters, interchange schemas,
import/export mappings, and admin panels.

Declare your schemas and model configurations in a catalog file, then use
the CLI to inspect what the registry derives from them or serve the
introspection API.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to the model catalog file")
	root.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: json or table")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newModelsCommand())
	root.AddCommand(newDescribeCommand())
	root.AddCommand(newServeCommand())
	root.AddCommand(newVersionCommand(version))

	return root
}

// loadRegistry builds a registry from the configured catalog file.
// Resolution order: --catalog flag, then benchtop.yml, then "catalog.yaml".
func loadRegistry() (*registry.Registry, error) {
	path := catalogPath
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		path = cfg.Catalog
	}

	reg, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return reg, nil
}
