package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/slidesmith/slidesmith"
	"github.com/slidesmith/slidesmith/deck"
	"github.com/slidesmith/slidesmith/internal/store"
	"github.com/slidesmith/slidesmith/opc"
	"github.com/slidesmith/slidesmith/outline"
)

// OutlineGenerator produces the content slides for a request.
type OutlineGenerator interface {
	Generate(ctx context.Context, req outline.Request) ([]outline.Slide, error)
}

// Handler serves the generation API: outline, build, token, download.
type Handler struct {
	outliner     OutlineGenerator
	tokens       *store.TokenStore
	history      *store.History
	templatePath string
}

func New(outliner OutlineGenerator, tokens *store.TokenStore, history *store.History, templatePath string) *Handler {
	return &Handler{
		outliner:     outliner,
		tokens:       tokens,
		history:      history,
		templatePath: templatePath,
	}
}

type generateRequest struct {
	Title     string   `json:"title" binding:"required"`
	Topics    []string `json:"topics" binding:"required,min=1"`
	NumSlides int      `json:"num_slides" binding:"omitempty,gte=2,lte=15"`
	Context   string   `json:"context"`
	Tone      string   `json:"tone"`
}

// Generate builds a deck from a request: LLM outline, in-memory PPTX,
// one-time download token. Nothing is written to disk.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slides, err := h.outliner.Generate(c.Request.Context(), outline.Request{
		Title:     req.Title,
		Topics:    req.Topics,
		NumSlides: req.NumSlides,
		Context:   req.Context,
		Tone:      req.Tone,
	})
	if err != nil {
		klog.Errorf("outline generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate slide content"})
		return
	}
	if len(slides) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate slide content"})
		return
	}

	builder := slidesmith.FromTemplate(h.templatePath).
		Fallback().
		Title(req.Title)
	for _, s := range slides {
		builder = builder.Slide(s.Title, s.Content...)
	}

	result, err := builder.Build()
	if err != nil {
		if errors.Is(err, deck.ErrMalformedTemplate) {
			klog.Errorf("template is malformed: %v", err)
		} else {
			klog.Errorf("deck build failed: %v", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.UsedFallback {
		klog.Warningf("template %s unavailable, used built-in theme", h.templatePath)
	}

	token := h.tokens.Put(result.Data, result.Filename)

	if err := h.history.Record(&store.Generation{
		Title:    req.Title,
		Filename: result.Filename,
		Slides:   len(slides) + 1,
		Fallback: result.UsedFallback,
	}); err != nil {
		// History is best-effort; the deck is already built.
		klog.Errorf("recording generation history: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"title":    req.Title,
		"slides":   slides,
		"filename": result.Filename,
		"token":    token,
	})
}

// Download streams a generated deck once, then forgets it.
func (h *Handler) Download(c *gin.Context) {
	entry, ok := h.tokens.Take(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found or already downloaded"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entry.Filename))
	c.Data(http.StatusOK, opc.MIMEType, entry.Data)
}

// History lists recent generations, newest first.
func (h *Handler) History(c *gin.Context) {
	records, err := h.history.Recent(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
