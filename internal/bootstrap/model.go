package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
)

const (
	infoFineTuned = "Fine-tuned BART model"
	infoBase      = "Base BART model"
	probeTimeout  = 30 * time.Second
)

// ErrNoModel is returned when no candidate model could be loaded.
var ErrNoModel = errors.New("no model could be loaded")

// ModelCandidate is one model id the loader may serve.
type ModelCandidate struct {
	ID        string
	FineTuned bool
}

// Prober checks that a model can serve requests.
type Prober interface {
	Probe(ctx context.Context, modelID string) error
}

// ModelCandidates lists the models to try in order: the fine-tuned model when
// its directory exists, then the public fallback.
func ModelCandidates(dir, fineTunedID, fallbackID string) []ModelCandidate {
	var out []ModelCandidate
	if dir != "" && fineTunedID != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			out = append(out, ModelCandidate{ID: fineTunedID, FineTuned: true})
		}
	}
	if fallbackID != "" {
		out = append(out, ModelCandidate{ID: fallbackID})
	}
	return out
}

// ModelInfo returns the human readable description of a loaded model.
func ModelInfo(fineTuned bool) string {
	if fineTuned {
		return infoFineTuned
	}
	return infoBase
}

// SelectModel returns the first candidate the prober accepts. A nil prober
// accepts the first candidate.
func SelectModel(ctx context.Context, prober Prober, candidates []ModelCandidate, logger *slog.Logger) (ModelCandidate, error) {
	var errs []error
	for _, candidate := range candidates {
		if prober == nil {
			return candidate, nil
		}
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := prober.Probe(probeCtx, candidate.ID)
		cancel()
		if err == nil {
			return candidate, nil
		}
		logger.Warn("model probe failed", "model_id", candidate.ID, "fine_tuned", candidate.FineTuned, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", candidate.ID, err))
	}
	return ModelCandidate{}, errors.Join(append([]error{ErrNoModel}, errs...)...)
}

// LoadBackend resolves the served model and returns the backend. Failure to
// load any model yields a degraded backend rather than an error.
func LoadBackend(ctx context.Context, provider summarizer.ModelProvider, prober Prober, candidates []ModelCandidate, gpu bool, logger *slog.Logger) summarizer.Backend {
	logger = logger.With("component", "bootstrap.model")
	degraded := summarizer.Backend{Availability: summarizer.Availability{GPUAvailable: gpu}}
	if provider == nil {
		logger.Error("model provider unavailable, serving without a model")
		return degraded
	}

	chosen, err := SelectModel(ctx, prober, candidates, logger)
	if err != nil {
		logger.Error("model not loaded, serving without a model", "error", err)
		return degraded
	}

	logger.Info("model loaded", "model_id", chosen.ID, "fine_tuned", chosen.FineTuned, "gpu", gpu)
	return summarizer.Backend{
		Provider: provider,
		Availability: summarizer.Availability{
			ModelLoaded:  true,
			GPUAvailable: gpu,
			ModelID:      chosen.ID,
			ModelInfo:    ModelInfo(chosen.FineTuned),
			FineTuned:    chosen.FineTuned,
			LoadedAt:     time.Now().UTC(),
		},
	}
}
