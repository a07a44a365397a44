package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	modelDir       string
	checkpointsDir string
	outputFormat   string
}

// NewRootCmd builds the modelctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "modelctl",
		Short: "Manage the dialogue summarization model files",
		Long: `modelctl prepares the project layout, inspects the served model directory,
converts training checkpoints, pulls published models from object storage and
writes model metadata.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(
		&opts.modelDir, "model-dir", "./models/bart-dialogsum",
		"Directory of the served model",
	)
	root.PersistentFlags().StringVar(
		&opts.checkpointsDir, "checkpoints", "./models/checkpoints",
		"Directory holding checkpoint-N training checkpoints",
	)
	root.PersistentFlags().StringVar(
		&opts.outputFormat, "format", "text",
		"Output format: text, json",
	)

	root.AddCommand(
		newInitCmd(opts),
		newInspectCmd(opts),
		newConvertCmd(opts),
		newPullCmd(opts),
		newMetadataCmd(opts),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) output(w io.Writer, v any, text func(io.Writer)) error {
	switch o.outputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "text", "":
		text(w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", o.outputFormat)
	}
}
