package modelstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Metadata is persisted next to a fine-tuned model as model_metadata.json.
type Metadata struct {
	Model        ModelSection       `json:"model"`
	Training     TrainingSection    `json:"training"`
	Hardware     HardwareSection    `json:"hardware"`
	Performance  PerformanceSection `json:"performance"`
	CreationDate string             `json:"creation_date"`
	CreatedBy    string             `json:"created_by"`
	Notes        string             `json:"notes,omitempty"`
}

type ModelSection struct {
	BaseModel   string `json:"base_model"`
	FineTunedOn string `json:"fine_tuned_on"`
	Purpose     string `json:"purpose"`
}

type TrainingSection struct {
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batch_size"`
	LearningRate float64 `json:"learning_rate"`
	DatasetSize  int     `json:"dataset_size"`
}

type HardwareSection struct {
	GPUUsed bool   `json:"gpu_used"`
	GPUName string `json:"gpu_name"`
	Host    string `json:"host,omitempty"`
	CPU     string `json:"cpu,omitempty"`
}

type PerformanceSection struct {
	FinalLoss    float64 `json:"final_loss"`
	TrainingTime string  `json:"training_time"`
}

// DefaultMetadata returns the metadata of a DialogSum fine-tune of the base
// BART model with the usual training settings.
func DefaultMetadata(gpuUsed bool) Metadata {
	gpuName := "CPU"
	if gpuUsed {
		gpuName = "GPU"
	}
	return Metadata{
		Model: ModelSection{
			BaseModel:   "facebook/bart-large-cnn",
			FineTunedOn: "DialogSum",
			Purpose:     "Dialogue summarization",
		},
		Training: TrainingSection{
			Epochs:       2,
			BatchSize:    8,
			LearningRate: 5e-5,
			DatasetSize:  12460,
		},
		Hardware:    HardwareSection{GPUUsed: gpuUsed, GPUName: gpuName},
		Performance: PerformanceSection{TrainingTime: "N/A"},
		CreatedBy:   "dialogsum",
	}
}

// WriteMetadata writes meta into dir/model_metadata.json.
func WriteMetadata(dir string, meta Metadata) (string, error) {
	payload, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	path := filepath.Join(dir, metadataFile)
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return path, nil
}

// ReadMetadata loads dir/model_metadata.json.
func ReadMetadata(dir string) (Metadata, error) {
	var meta Metadata
	raw, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return meta, fmt.Errorf("decode metadata: %w", err)
	}
	return meta, nil
}
