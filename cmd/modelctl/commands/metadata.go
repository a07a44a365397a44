package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/dialogsum/internal/domain/modelstore"
	"github.com/yanqian/dialogsum/internal/infra/device"
	"github.com/yanqian/dialogsum/pkg/util"
)

func newMetadataCmd(opts *options) *cobra.Command {
	var (
		gpuMode      string
		epochs       int
		batchSize    int
		learningRate float64
		datasetSize  int
		finalLoss    float64
		trainingTime string
		notes        string
	)
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Write model_metadata.json into the model directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gpu, err := device.DetectGPU(gpuMode)
			if err != nil {
				return err
			}
			meta := modelstore.DefaultMetadata(gpu)
			hostInfo := device.DescribeHost()
			meta.Hardware.Host, meta.Hardware.CPU = hostInfo.OS, hostInfo.CPU
			meta.Training = modelstore.TrainingSection{
				Epochs:       epochs,
				BatchSize:    batchSize,
				LearningRate: learningRate,
				DatasetSize:  datasetSize,
			}
			meta.Performance = modelstore.PerformanceSection{FinalLoss: finalLoss, TrainingTime: trainingTime}
			meta.CreationDate = util.NowUTC().Format("2006-01-02")
			meta.Notes = notes

			path, err := modelstore.WriteMetadata(opts.modelDir, meta)
			if err != nil {
				return err
			}
			return opts.output(cmd.OutOrStdout(), meta, func(w io.Writer) {
				fmt.Fprintf(w, "saved model metadata to %s\n", path)
			})
		},
	}
	defaults := modelstore.DefaultMetadata(false)
	cmd.Flags().StringVar(&gpuMode, "gpu", "auto", "GPU used for training: auto, true, false")
	cmd.Flags().IntVar(&epochs, "epochs", defaults.Training.Epochs, "Training epochs")
	cmd.Flags().IntVar(&batchSize, "batch-size", defaults.Training.BatchSize, "Training batch size")
	cmd.Flags().Float64Var(&learningRate, "learning-rate", defaults.Training.LearningRate, "Learning rate")
	cmd.Flags().IntVar(&datasetSize, "dataset-size", defaults.Training.DatasetSize, "Number of training dialogues")
	cmd.Flags().Float64Var(&finalLoss, "final-loss", 0, "Final training loss")
	cmd.Flags().StringVar(&trainingTime, "training-time", defaults.Performance.TrainingTime, "Wall clock training time")
	cmd.Flags().StringVar(&notes, "notes", "", "Free form notes")
	return cmd
}
