package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unihub/apispec/internal/config"
	"github.com/unihub/apispec/internal/emit"
	"github.com/unihub/apispec/internal/logging"
	"github.com/unihub/apispec/internal/mocks"
)

func NewMocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mocks",
		Short: "Write the mock fixture tree with its README and package.json",
		Args:  cobra.NoArgs,
		RunE:  runMocks,
	}

	flags := cmd.Flags()
	flags.StringP("output-dir", "o", "", "Output directory")
	flags.String("templates", "", "Custom templates directory")
	flags.String("last-updated", "", "Date stamped into the README (YYYY-MM-DD)")

	return cmd
}

func runMocks(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	gen, err := mocks.New(mocks.Options{
		TemplatesDir: cfg.Mocks.TemplatesDir,
		LastUpdated:  cfg.Mocks.LastUpdated,
		Logger:       logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format),
	})
	if err != nil {
		return err
	}

	files, err := gen.Generate()
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", f.Name, f.Content)
		}
		return nil
	}

	written, err := emit.Write(cfg.Mocks.OutputDir, files)
	if err != nil {
		return err
	}
	cmd.PrintErrf("Written %d files to %s\n", len(written), cfg.Mocks.OutputDir)

	return nil
}
