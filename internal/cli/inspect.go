package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unihub/apispec/internal/loader"
)

func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print a summary of an OpenAPI 3.x document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := loader.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("loading spec: %w", err)
			}
			printSummary(cmd, result)
			return nil
		},
	}
}

// printSummary writes the report to stdout and loader warnings to stderr.
func printSummary(cmd *cobra.Command, result *loader.Result) {
	for _, w := range result.Warnings {
		cmd.PrintErrf("Warning: %s\n", w)
	}

	spec := loader.Transform(result)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "OpenAPI %s: %s v%s\n", spec.Version, spec.Info.Title, spec.Info.Version)
	if len(spec.Servers) > 0 {
		fmt.Fprintln(out, "Servers:")
		for _, s := range spec.Servers {
			if s.Description != "" {
				fmt.Fprintf(out, "  %s (%s)\n", s.URL, s.Description)
			} else {
				fmt.Fprintf(out, "  %s\n", s.URL)
			}
		}
	}
	fmt.Fprintf(out, "Paths: %d\n", len(spec.Paths))
	fmt.Fprintf(out, "Operations: %d\n", spec.OperationCount())
	for _, mc := range spec.MethodCounts() {
		fmt.Fprintf(out, "  %s: %d\n", mc.Method, mc.Count)
	}
	fmt.Fprintf(out, "Schemas: %d\n", len(spec.Schemas))
	if len(spec.Schemas) > 0 {
		fmt.Fprintf(out, "  %s\n", strings.Join(spec.Schemas, ", "))
	}
	if len(spec.Security) > 0 {
		fmt.Fprintln(out, "Security schemes:")
		for _, s := range spec.Security {
			line := s.Type
			if s.Scheme != "" {
				line += " " + s.Scheme
			}
			if s.BearerFormat != "" {
				line += " (" + s.BearerFormat + ")"
			}
			fmt.Fprintf(out, "  %s: %s\n", s.Name, line)
		}
	}
}
