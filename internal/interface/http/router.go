package http

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/dialogsum/internal/infra/config"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter wires up the HTTP handlers and returns a configured server. mcp
// may be nil.
func NewRouter(cfg *config.Config, handler *Handler, mcp http.Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")))
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	limited := rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger)

	router.GET("/", handler.Home)
	router.POST("/summarize", limited, handler.Summarize)

	api := router.Group("/api")
	{
		api.POST("/summarize", limited, handler.APISummarize)
		api.GET("/health", handler.Health)
		api.GET("/examples", handler.Examples)
		api.GET("/history", handler.History)
		api.GET("/model", handler.Model)
	}

	if mcp != nil && cfg.MCP.Enabled {
		router.Any(cfg.MCP.Path, limited, gin.WrapH(mcp))
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
