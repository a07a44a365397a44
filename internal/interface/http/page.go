package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/dialogsum/internal/domain/modelstore"
	"github.com/yanqian/dialogsum/internal/domain/summarizer"
	apperrors "github.com/yanqian/dialogsum/pkg/errors"
)

const (
	pageTemplate        = "summarize.html"
	statusModelLoaded   = "✅ Model Loaded Successfully"
	statusModelNotReady = "❌ Model Not Available"
)

type pageData struct {
	ModelStatus string
	ModelLoaded bool
	ModelInfo   string
	ModelCard   template.HTML
	Samples     []summarizer.SampleDialogue
	Defaults    summarizer.Params

	Error     string
	InputText string
	Success   bool
	Summary   string
	Stats     summarizer.Statistics
	MaxLength int
	MinLength int
	Cached    bool
}

func (h *Handler) basePage() pageData {
	availability := h.summarizerSvc.Availability()
	status := statusModelNotReady
	if availability.ModelLoaded {
		status = statusModelLoaded
	}
	defaults := h.summarizerSvc.DefaultParams()
	return pageData{
		ModelStatus: status,
		ModelLoaded: availability.ModelLoaded,
		ModelInfo:   availability.ModelInfo,
		ModelCard:   h.cards.get(),
		Samples:     h.summarizerSvc.Samples(),
		Defaults:    defaults,
		MaxLength:   defaults.MaxLength,
		MinLength:   defaults.MinLength,
	}
}

// Home serves GET /.
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplate, h.basePage())
}

// Summarize serves POST /summarize from the HTML form.
func (h *Handler) Summarize(c *gin.Context) {
	page := h.basePage()
	params := summarizer.ParseParams(formValue(c, "max_length"), formValue(c, "min_length"), page.Defaults)
	out := h.summarizerSvc.Summarize(c.Request.Context(), summarizer.Request{
		Text:   c.PostForm("text"),
		Params: params,
	})

	if err := out.Result.Err; !out.Result.Success {
		page.Error = apperrors.MessageOf(err)
		if apperrors.IsCode(err, summarizer.CodeProviderFailure) {
			page.Error = out.Result.LegacyText()
		}
		page.InputText = h.summarizerSvc.Echo(out.Input, err)
		page.MaxLength, page.MinLength = params.MaxLength, params.MinLength
		c.HTML(http.StatusOK, pageTemplate, page)
		return
	}

	page.Success = true
	page.InputText = out.Input
	page.Summary = out.Result.Summary
	page.Stats = out.Statistics
	page.Cached = out.Result.Cached
	page.MaxLength, page.MinLength = out.Params.MaxLength, out.Params.MinLength
	c.HTML(http.StatusOK, pageTemplate, page)
}

// cardCache renders the model card of the model directory once.
type cardCache struct {
	dir    string
	logger *slog.Logger
	once   sync.Once
	html   template.HTML
}

func newCardCache(dir string, logger *slog.Logger) *cardCache {
	return &cardCache{dir: dir, logger: logger}
}

func (c *cardCache) get() template.HTML {
	c.once.Do(func() {
		if c.dir == "" {
			return
		}
		info, err := modelstore.Inspect(c.dir)
		if err != nil {
			c.logger.Warn("inspect model dir failed", "dir", c.dir, "error", err)
			return
		}
		rendered, err := modelstore.RenderCard(info.Card)
		if err != nil {
			c.logger.Warn("render model card failed", "error", err)
			return
		}
		// goldmark drops raw HTML from the card, so the output is trusted.
		c.html = template.HTML(rendered)
	})
	return c.html
}
