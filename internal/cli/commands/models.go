package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/benchtop-io/benchtop/internal/registry"
)

// newModelsCommand creates the 'models' command
func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List all registered models",
		Long: `List every model registered from the catalog, with its family and
the number of declared fields.`,
		Example: `  # List all models
  benchtop models

  # List models in JSON format for tooling
  benchtop models --format json`,
		RunE: runModelsCommand,
	}
}

func runModelsCommand(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return printModelsJSON(reg)
	}
	return printModelsTable(reg)
}

func printModelsJSON(reg *registry.Registry) error {
	type row struct {
		Name   string `json:"name"`
		Family string `json:"family"`
		Label  string `json:"label,omitempty"`
		Fields int    `json:"fields"`
	}

	rows := make([]row, 0, reg.Len())
	for _, e := range reg.Entries() {
		rows = append(rows, row{
			Name:   e.Schema.Qualified(),
			Family: e.Family.String(),
			Label:  e.Config.Meta.Label,
			Fields: len(e.Schema.Fields()),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func printModelsTable(reg *registry.Registry) error {
	entries := reg.Entries()
	if len(entries) == 0 {
		fmt.Println("No models registered.")
		return nil
	}

	header := color.New(color.Bold)
	header.Printf("%-40s %-14s %-8s %s\n", "MODEL", "FAMILY", "FIELDS", "LABEL")

	for _, e := range entries {
		fmt.Printf("%-40s %-14s %-8d %s\n",
			e.Schema.Qualified(), e.Family.String(), len(e.Schema.Fields()), e.Config.Meta.Label)
	}

	fmt.Printf("\n%d models (%d samples, %d measurements)\n",
		reg.Len(), len(reg.Samples()), len(reg.Measurements()))
	return nil
}
