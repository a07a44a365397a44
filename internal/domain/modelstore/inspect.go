package modelstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// RequiredFiles must all be present for a directory to hold a usable model.
var RequiredFiles = []string{
	"pytorch_model.bin",
	"config.json",
	"tokenizer_config.json",
}

const (
	configFile   = "config.json"
	metadataFile = "model_metadata.json"
	cardFile     = "README.md"
)

// Info describes a model directory on disk.
type Info struct {
	Path         string   `json:"path"`
	Exists       bool     `json:"exists"`
	Complete     bool     `json:"complete"`
	MissingFiles []string `json:"missing_files"`
	SizeBytes    int64    `json:"size_bytes"`
	Size         string   `json:"size"`
	ModelType    string   `json:"model_type,omitempty"`
	VocabSize    int      `json:"vocab_size,omitempty"`
	HiddenLayers int      `json:"num_hidden_layers,omitempty"`
	HasMetadata  bool     `json:"has_metadata"`
	Card         string   `json:"-"`
}

// CheckModelFiles reports which required files are missing from dir. A
// missing directory reports every file.
func CheckModelFiles(dir string) []string {
	missing := make([]string, 0, len(RequiredFiles))
	for _, name := range RequiredFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// Inspect gathers size, config fields, metadata presence and the model card.
func Inspect(dir string) (Info, error) {
	info := Info{Path: dir, MissingFiles: []string{}}
	st, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		info.MissingFiles = append(info.MissingFiles, RequiredFiles...)
		info.Size = HumanSize(0)
		return info, nil
	}
	if err != nil {
		return info, fmt.Errorf("stat model dir: %w", err)
	}
	if !st.IsDir() {
		return info, fmt.Errorf("model path %s is not a directory", dir)
	}
	info.Exists = true
	info.MissingFiles = CheckModelFiles(dir)
	info.Complete = len(info.MissingFiles) == 0

	size, err := dirSize(dir)
	if err != nil {
		return info, err
	}
	info.SizeBytes = size
	info.Size = HumanSize(size)

	if cfg, err := loadConfig(dir); err == nil {
		info.ModelType = cfg.ModelType
		info.VocabSize = cfg.VocabSize
		info.HiddenLayers = cfg.NumHiddenLayers
	} else if !errors.Is(err, fs.ErrNotExist) {
		return info, err
	}

	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err == nil {
		info.HasMetadata = true
	}
	if card, err := os.ReadFile(filepath.Join(dir, cardFile)); err == nil {
		info.Card = string(card)
	}
	return info, nil
}

type modelConfig struct {
	ModelType       string `json:"model_type"`
	VocabSize       int    `json:"vocab_size"`
	NumHiddenLayers int    `json:"num_hidden_layers"`
}

func loadConfig(dir string) (modelConfig, error) {
	var cfg modelConfig
	raw, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", configFile, err)
	}
	return cfg, nil
}

func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		total += fi.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("measure model dir: %w", err)
	}
	return total, nil
}

// HumanSize formats a byte count with binary units and one decimal.
func HumanSize(n int64) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d B", n)
	case n < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	case n < unit*unit*unit:
		return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/(unit*unit*unit))
	}
}
