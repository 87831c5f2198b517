package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/postdeck/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			info := version.Get()
			if format != outputTable {
				return writeStructured(cmd.OutOrStdout(), format, info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}
}
