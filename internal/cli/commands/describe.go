package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/benchtop-io/benchtop/internal/artifact"
	"github.com/benchtop-io/benchtop/internal/registry"
	"github.com/benchtop-io/benchtop/internal/schema"
)

var describeArtifact string

// newDescribeCommand creates the 'describe' command
func newDescribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <model>",
		Short: "Show a registered model and its generated artifacts",
		Long: `Show the fields, field resolution per artifact, and registration site of
a registered model. With --artifact, generate and print that artifact.`,
		Example: `  # Describe the water_sample model
  benchtop describe samples.water_sample

  # Print the generated filter definition
  benchtop describe samples.water_sample --artifact filter`,
		Args: cobra.ExactArgs(1),
		RunE: runDescribeCommand,
	}

	cmd.Flags().StringVar(&describeArtifact, "artifact", "", "Artifact to generate: form, table, filter, interchange, transfer, or admin")
	return cmd
}

func runDescribeCommand(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	name := args[0]
	entry, ok := reg.Entry(name)
	if !ok {
		msg := fmt.Sprintf("model not registered: %s", name)
		if suggestions := schema.FindSimilar(name, reg.Names()); len(suggestions) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
		}
		return fmt.Errorf("%s", msg)
	}

	if describeArtifact != "" {
		return printArtifact(entry, describeArtifact)
	}
	return printModel(entry)
}

func printArtifact(entry *registry.Entry, kindName string) error {
	kind, err := artifact.ParseKind(kindName)
	if err != nil {
		return err
	}

	a, err := entry.Config.Get(kind)
	if err != nil {
		return fmt.Errorf("failed to generate %s artifact: %w", kind, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

func printModel(entry *registry.Entry) error {
	title := color.New(color.Bold, color.FgCyan)
	section := color.New(color.Bold)

	title.Printf("%s", entry.Schema.Qualified())
	fmt.Printf("  [%s]\n", entry.Family)
	if entry.Config.Meta.Label != "" {
		fmt.Printf("%s\n", entry.Config.Meta.Label)
	}
	if entry.Site != "" {
		fmt.Printf("registered at %s\n", entry.Site)
	}

	section.Println("\nFields:")
	for _, f := range entry.Schema.Fields() {
		line := fmt.Sprintf("  %-20s %s", f.Name, f.Kind)
		if f.Nullable {
			line += " (optional)"
		}
		if f.Related != nil {
			line += " -> " + f.Related.Qualified()
		}
		fmt.Println(line)
	}

	section.Println("\nArtifact field resolution:")
	for _, kind := range artifact.Kinds {
		fields := entry.Config.FieldsFor(kind)
		fmt.Printf("  %-12s %s\n", kind, strings.Join(fields, ", "))
	}

	return nil
}
