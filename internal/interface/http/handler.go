package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/yanqian/dialogsum/internal/domain/history"
	"github.com/yanqian/dialogsum/internal/domain/modelstore"
	"github.com/yanqian/dialogsum/internal/domain/summarizer"
	apperrors "github.com/yanqian/dialogsum/pkg/errors"
	"github.com/yanqian/dialogsum/pkg/util"
)

// API level messages kept for client compatibility.
const (
	apiMsgModelNotLoaded = "Model not loaded"
	apiMsgNoText         = "No text provided"
)

// HistoryReader lists recently recorded summaries.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// ModelDir is the directory the served model is loaded from.
type ModelDir string

// Handler wires the HTTP transport to domain services.
type Handler struct {
	summarizerSvc summarizer.Service
	history       HistoryReader
	modelDir      string
	cards         *cardCache
	logger        *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(summarySvc summarizer.Service, historyReader HistoryReader, modelDir ModelDir, logger *slog.Logger) *Handler {
	logger = logger.With("component", "http.handler")
	return &Handler{
		summarizerSvc: summarySvc,
		history:       historyReader,
		modelDir:      string(modelDir),
		cards:         newCardCache(string(modelDir), logger),
		logger:        logger,
	}
}

type apiSummarizeRequest struct {
	Text      string `json:"text"`
	MaxLength any    `json:"max_length"`
	MinLength any    `json:"min_length"`
}

type apiSummarizeResponse struct {
	Success    bool                   `json:"success"`
	Summary    string                 `json:"summary"`
	Error      string                 `json:"error,omitempty"`
	Statistics *summarizer.Statistics `json:"statistics,omitempty"`
	Parameters *summarizer.Params     `json:"parameters,omitempty"`
}

// APISummarize serves POST /api/summarize for JSON and form bodies.
func (h *Handler) APISummarize(c *gin.Context) {
	if !h.summarizerSvc.Availability().ModelLoaded {
		c.JSON(http.StatusOK, apiSummarizeResponse{Error: apiMsgModelNotLoaded})
		return
	}

	var req apiSummarizeRequest
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return
		}
	} else {
		req.Text = c.PostForm("text")
		req.MaxLength = formValue(c, "max_length")
		req.MinLength = formValue(c, "min_length")
	}

	params := summarizer.ParseParams(req.MaxLength, req.MinLength, h.summarizerSvc.DefaultParams())
	out := h.summarizerSvc.Summarize(c.Request.Context(), summarizer.Request{Text: req.Text, Params: params})
	if !out.Result.Success {
		msg := out.Result.LegacyText()
		switch apperrors.CodeOf(out.Result.Err) {
		case summarizer.CodeModelUnavailable:
			msg = apiMsgModelNotLoaded
		case summarizer.CodeEmptyText:
			msg = apiMsgNoText
		}
		h.logger.Warn("api summarize failed", "code", apperrors.CodeOf(out.Result.Err), "error", out.Result.Err)
		c.JSON(http.StatusOK, apiSummarizeResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, apiSummarizeResponse{
		Success:    true,
		Summary:    out.Result.Summary,
		Statistics: &out.Statistics,
		Parameters: &out.Params,
	})
}

// Health serves GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	availability := h.summarizerSvc.Availability()
	status := "healthy"
	if !availability.ModelLoaded {
		status = "error"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        status,
		"model_loaded":  availability.ModelLoaded,
		"gpu_available": availability.GPUAvailable,
		"timestamp":     util.FormatTimestamp(util.NowUTC()),
	})
}

// Examples serves GET /api/examples.
func (h *Handler) Examples(c *gin.Context) {
	samples := h.summarizerSvc.Samples()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"examples": samples,
		"count":    len(samples),
	})
}

// History serves GET /api/history.
func (h *Handler) History(c *gin.Context) {
	if h.history == nil {
		abortWithError(c, NewHTTPError(http.StatusServiceUnavailable, "history_disabled", "history is not enabled", nil))
		return
	}
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}
	entries, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "history_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": entries,
		"count":   len(entries),
	})
}

// Model serves GET /api/model with an inspection of the model directory.
func (h *Handler) Model(c *gin.Context) {
	info, err := modelstore.Inspect(h.modelDir)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "model_inspect_failed", errMessage(err), err))
		return
	}
	availability := h.summarizerSvc.Availability()
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"model_loaded":  availability.ModelLoaded,
		"model_id":      availability.ModelID,
		"model_info":    availability.ModelInfo,
		"fine_tuned":    availability.FineTuned,
		"gpu_available": availability.GPUAvailable,
		"files":         info,
	})
}

// formValue returns nil for an absent field so ParseParams applies its
// default.
func formValue(c *gin.Context, key string) any {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return nil
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
