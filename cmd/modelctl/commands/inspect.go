package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/dialogsum/internal/domain/modelstore"
)

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show information about the model directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := modelstore.Inspect(opts.modelDir)
			if err != nil {
				return err
			}
			return opts.output(cmd.OutOrStdout(), info, func(w io.Writer) {
				fmt.Fprint(w, formatInfo(info))
			})
		},
	}
}

func formatInfo(info modelstore.Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path: %s\n", info.Path)
	if !info.Exists {
		b.WriteString("Status: not found\n")
		return b.String()
	}
	if info.Complete {
		b.WriteString("Status: complete\n")
	} else {
		fmt.Fprintf(&b, "Status: missing %s\n", strings.Join(info.MissingFiles, ", "))
	}
	fmt.Fprintf(&b, "Size: %s\n", info.Size)
	fmt.Fprintf(&b, "Type: %s\n", orUnknown(info.ModelType))
	fmt.Fprintf(&b, "Vocabulary: %s\n", orUnknown(intString(info.VocabSize)))
	fmt.Fprintf(&b, "Layers: %s\n", orUnknown(intString(info.HiddenLayers)))
	if info.HasMetadata {
		b.WriteString("Metadata: available\n")
	}
	return b.String()
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprint(n)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
