package cli

import (
	"github.com/spf13/cobra"

	"github.com/unihub/apispec/internal/config"
)

const version = "1.0.0"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "apispec",
		Short:   "Bundle modular OpenAPI specs and generate mock fixtures",
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindCommonFlags(root)
	root.AddCommand(NewBundleCmd(), NewMocksCmd(), NewInspectCmd())

	return root
}
