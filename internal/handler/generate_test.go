package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/deck"
	"github.com/slidesmith/slidesmith/internal/store"
	"github.com/slidesmith/slidesmith/opc"
	"github.com/slidesmith/slidesmith/outline"
)

type mockOutliner struct {
	slides  []outline.Slide
	err     error
	lastReq outline.Request
}

func (m *mockOutliner) Generate(ctx context.Context, req outline.Request) ([]outline.Slide, error) {
	m.lastReq = req
	return m.slides, m.err
}

func newTestRouter(t *testing.T, outliner OutlineGenerator) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.InitDB(":memory:")
	require.NoError(t, err)

	// No template on disk: every build takes the fallback theme.
	h := New(outliner, store.NewTokenStore(), store.NewHistory(db), "testdata/missing.pptx")

	r := gin.New()
	r.POST("/api/generate", h.Generate)
	r.GET("/api/download/:token", h.Download)
	r.GET("/api/history", h.History)
	return r, h
}

func postGenerate(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateAndDownload(t *testing.T) {
	outliner := &mockOutliner{slides: []outline.Slide{
		{Title: "Scope", Content: []string{"Ship the core module first.", "Defer integrations."}},
		{Title: "Timeline", Content: []string{"Six weeks end to end."}},
	}}
	r, _ := newTestRouter(t, outliner)

	w := postGenerate(t, r, `{"title": "Kickoff Deck", "topics": ["scope", "timeline"], "num_slides": 2, "tone": "technical"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Title    string          `json:"title"`
		Slides   []outline.Slide `json:"slides"`
		Filename string          `json:"filename"`
		Token    string          `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Kickoff Deck", resp.Title)
	assert.Equal(t, "Kickoff_Deck.pptx", resp.Filename)
	assert.Len(t, resp.Slides, 2)
	require.NotEmpty(t, resp.Token)

	// The outline request carried the caller's parameters.
	assert.Equal(t, 2, outliner.lastReq.NumSlides)
	assert.Equal(t, "technical", outliner.lastReq.Tone)

	// First download streams the file.
	req := httptest.NewRequest(http.MethodGet, "/api/download/"+resp.Token, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, opc.MIMEType, w2.Header().Get("Content-Type"))
	assert.Contains(t, w2.Header().Get("Content-Disposition"), `"Kickoff_Deck.pptx"`)

	// The payload is a loadable deck: title + 2 content slides.
	p, err := deck.Load(w2.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, p.SlideCount())

	// Second download of the same token fails.
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/api/download/"+resp.Token, nil))
	assert.Equal(t, http.StatusNotFound, w3.Code)
}

func TestGenerateValidation(t *testing.T) {
	r, _ := newTestRouter(t, &mockOutliner{})

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"topics": ["a"]}`},
		{"missing topics", `{"title": "T"}`},
		{"empty topics", `{"title": "T", "topics": []}`},
		{"slides too low", `{"title": "T", "topics": ["a"], "num_slides": 1}`},
		{"slides too high", `{"title": "T", "topics": ["a"], "num_slides": 16}`},
		{"not json", `plain text`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postGenerate(t, r, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGenerateOutlineFailure(t *testing.T) {
	r, _ := newTestRouter(t, &mockOutliner{err: errors.New("model offline")})

	w := postGenerate(t, r, `{"title": "T", "topics": ["a"]}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to generate slide content")
}

func TestDownloadUnknownToken(t *testing.T) {
	r, _ := newTestRouter(t, &mockOutliner{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/download/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryAfterGenerate(t *testing.T) {
	outliner := &mockOutliner{slides: []outline.Slide{{Title: "Only", Content: []string{"One bullet."}}}}
	r, _ := newTestRouter(t, outliner)

	require.Equal(t, http.StatusOK, postGenerate(t, r, `{"title": "Deck A", "topics": ["x"]}`).Code)
	require.Equal(t, http.StatusOK, postGenerate(t, r, `{"title": "Deck B", "topics": ["y"]}`).Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var records []store.Generation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Deck B", records[0].Title)
	assert.Equal(t, 2, records[0].Slides) // title + one content slide
	assert.True(t, records[0].Fallback)
}
