package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/unihub/apispec/internal/bundler"
	"github.com/unihub/apispec/internal/config"
	"github.com/unihub/apispec/internal/loader"
	"github.com/unihub/apispec/internal/logging"
)

func NewBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Merge the shared file and modules into dist/openapi.{yaml,json}",
		Args:  cobra.NoArgs,
		RunE:  runBundle,
	}

	flags := cmd.Flags()
	flags.String("base-dir", "", "Directory holding the shared file and modules")
	flags.String("shared", "", "Shared definitions file")
	flags.String("modules-dir", "", "Modules directory")
	flags.StringSlice("modules", nil, "Modules in merge order")
	flags.StringP("output-dir", "o", "", "Output directory, relative to base-dir")
	flags.Bool("summary", false, "Print a summary of the written bundle")

	return cmd
}

func runBundle(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	assembler := bundler.New(bundler.Options{
		BaseDir:    cfg.Bundle.BaseDir,
		Shared:     cfg.Bundle.Shared,
		ModulesDir: cfg.Bundle.ModulesDir,
		Modules:    cfg.Bundle.Modules,
		Logger:     logger,
	})

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		result, err := assembler.Assemble()
		if err != nil {
			return err
		}
		out, err := bundler.Serialize(result.Document)
		if err != nil {
			return err
		}
		for _, f := range out.Files() {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s\n", f.Name, f.Content)
		}
		return nil
	}

	outputDir := cfg.Bundle.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(cfg.Bundle.BaseDir, outputDir)
	}

	result, written, err := bundler.Bundle(assembler, outputDir)
	if err != nil {
		return err
	}

	for _, path := range written {
		cmd.PrintErrf("Written: %s\n", path)
	}
	cmd.PrintErrf("Bundled %d modules (%d skipped)\n", len(result.Modules), len(result.Skipped))
	cmd.PrintErrf("  Paths: %d\n", result.PathCount())
	cmd.PrintErrf("  Schemas: %d\n", result.SchemaCount())

	summary, _ := cmd.Flags().GetBool("summary")
	if summary {
		loaded, err := loader.LoadFile(filepath.Join(outputDir, bundler.YAMLFile))
		if err != nil {
			return err
		}
		printSummary(cmd, loaded)
	}

	return nil
}
