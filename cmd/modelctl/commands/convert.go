package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/dialogsum/internal/domain/modelstore"
)

func newConvertCmd(opts *options) *cobra.Command {
	var checkpoint string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Turn a training checkpoint into the served model directory",
		Long: `Copies a checkpoint-N directory into --model-dir. Without --checkpoint the
checkpoint with the highest step under --checkpoints is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := checkpoint
			if src == "" {
				latest, err := modelstore.FindLatestCheckpoint(opts.checkpointsDir)
				if err != nil {
					return err
				}
				src = latest
			}
			n, err := modelstore.ConvertCheckpoint(src, opts.modelDir)
			if err != nil {
				return err
			}
			result := map[string]any{"checkpoint": src, "output": opts.modelDir, "files": n}
			return opts.output(cmd.OutOrStdout(), result, func(w io.Writer) {
				fmt.Fprintf(w, "converted %s into %s (%d files)\n", src, opts.modelDir, n)
			})
		},
	}
	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "Checkpoint directory to convert")
	return cmd
}
