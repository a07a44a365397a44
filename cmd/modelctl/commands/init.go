package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/dialogsum/internal/domain/modelstore"
)

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init [root]",
		Short: "Create the data and model directory layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			dirs, err := modelstore.Bootstrap(root)
			if err != nil {
				return err
			}
			return opts.output(cmd.OutOrStdout(), map[string]any{"directories": dirs}, func(w io.Writer) {
				for _, dir := range dirs {
					fmt.Fprintf(w, "created %s\n", dir)
				}
			})
		},
	}
}
