package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/dialogsum/internal/domain/modelstore"
	"github.com/yanqian/dialogsum/internal/infra/artifacts"
	"github.com/yanqian/dialogsum/internal/infra/config"
	"github.com/yanqian/dialogsum/pkg/logger"
)

func newPullCmd(opts *options) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download a published model directory from object storage",
		Long: `Downloads every object under the artifacts prefix into --model-dir. Bucket
settings come from the artifacts section of the service configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if prefix == "" {
				prefix = cfg.Artifacts.Prefix
			}
			log := logger.New()
			store, err := artifacts.NewBucketStore(
				cfg.Artifacts.Endpoint, cfg.Artifacts.AccessKey, cfg.Artifacts.SecretKey,
				cfg.Artifacts.Bucket, cfg.Artifacts.Region, log,
			)
			if err != nil {
				return err
			}
			n, err := modelstore.NewSyncer(store, log).Pull(cmd.Context(), prefix, opts.modelDir)
			if err != nil {
				return err
			}
			result := map[string]any{"prefix": prefix, "output": opts.modelDir, "files": n}
			return opts.output(cmd.OutOrStdout(), result, func(w io.Writer) {
				fmt.Fprintf(w, "pulled %d files from %s into %s\n", n, prefix, opts.modelDir)
			})
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Object key prefix (default: artifacts.prefix)")
	return cmd
}
