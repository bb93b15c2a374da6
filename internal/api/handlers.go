package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/crosscheck/internal/catalog"
	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
	"github.com/ppiankov/crosscheck/internal/pipeline"
)

// Version is reported by the root and health endpoints
var Version = "dev"

const maxRequestBytes = 64 << 10

// Engine analyzes claims. *pipeline.Engine satisfies it.
type Engine interface {
	AnalyzeClaim(ctx context.Context, claim string) *model.AnalyzeResponse
	Status() pipeline.Status
}

// Handler handles HTTP requests
type Handler struct {
	engine  Engine
	catalog *catalog.Catalog
	cfg     *model.Config
	started time.Time
	logger  *slog.Logger
}

// NewHandler creates a handler over the engine and its catalog
func NewHandler(engine Engine, cat *catalog.Catalog, cfg *model.Config, logger *slog.Logger) *Handler {
	return &Handler{
		engine:  engine,
		catalog: cat,
		cfg:     cfg,
		started: time.Now(),
		logger:  logging.OrDefault(logger),
	}
}

type analyzeRequest struct {
	Claim string `json:"claim"`
}

// Analyze fact-checks the posted claim. Problems with the claim are reported
// in-band with status 200, as the engine never fails.
func (h *Handler) Analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("unreadable analyze request", "error", err)
		req.Claim = ""
	}

	resp := h.engine.AnalyzeClaim(c.Request.Context(), req.Claim)
	c.JSON(http.StatusOK, resp)
}

// Health reports which collaborators are configured
func (h *Handler) Health(c *gin.Context) {
	status := h.engine.Status()
	hostname, _ := os.Hostname()

	c.JSON(http.StatusOK, gin.H{
		"status":    "operational",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"server":    "crosscheck " + Version,
		"host":      hostname,
		"uptime":    time.Since(h.started).Seconds(),
		"apis": gin.H{
			"llm":             status.Provider,
			"llmAvailable":    status.AIEnabled,
			"googleFactCheck": status.GoogleFactCheck,
			"claimBuster":     status.ClaimBuster,
		},
		"features": gin.H{
			"factChecking":       true,
			"aiAnalysis":         status.AIEnabled,
			"externalFactChecks": status.GoogleFactCheck || status.ClaimBuster,
			"feedSearch":         h.cfg.Search.EnableFeeds,
			"robots":             h.cfg.HTTP.RespectRobots,
		},
		"cache": status.Cache,
	})
}

// Sources lists the catalog, optionally filtered by ?category=
func (h *Handler) Sources(c *gin.Context) {
	sources := h.catalog.All()

	if raw := c.Query("category"); raw != "" {
		cat, err := model.ParseCategory(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sources = h.catalog.ByCategory(cat)
	}

	type sourceView struct {
		Name             string `json:"name"`
		Domain           string `json:"domain"`
		Category         string `json:"category"`
		CredibilityScore int    `json:"credibilityScore"`
		Favicon          string `json:"favicon"`
		WarningLabel     string `json:"warningLabel,omitempty"`
	}
	out := make([]sourceView, 0, len(sources))
	for _, s := range sources {
		out = append(out, sourceView{
			Name:             s.Name,
			Domain:           s.Domain,
			Category:         string(s.Category),
			CredibilityScore: s.CredibilityScore,
			Favicon:          s.Favicon(),
			WarningLabel:     s.WarningLabel,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(out),
		"sources": out,
	})
}
