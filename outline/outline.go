// Package outline generates slide content for a presentation request,
// either through an OpenAI-compatible chat model or, when no model is
// configured, through a deterministic topic-derived fallback.
package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/slidesmith/slidesmith/config"
)

// Slide count bounds enforced on every request.
const (
	MinSlides     = 2
	MaxSlides     = 15
	DefaultSlides = 5
)

// Request describes one outline to generate.
type Request struct {
	Title     string
	Topics    []string
	NumSlides int
	Context   string
	Tone      string
}

// Slide is one content slide of the outline.
type Slide struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// Generator produces outlines. A nil chat model means no API key was
// configured; every request then takes the fallback path.
type Generator struct {
	chatModel model.BaseChatModel
	modelName string
}

// New builds a Generator from the LLM configuration. A missing API key
// is not an error: the generator degrades to topic-derived outlines.
func New(cfg config.LLMConfig) (*Generator, error) {
	if cfg.APIKey == "" {
		klog.Warning("no LLM API key configured, outlines will be topic-derived")
		return &Generator{}, nil
	}

	modelConfig := &openaimodel.ChatModelConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}
	if cfg.APIURL != "" {
		modelConfig.BaseURL = cfg.APIURL
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelConfig.MaxTokens = &maxTokens
	}
	temperature := float32(0.3)
	modelConfig.Temperature = &temperature

	chatModel, err := openaimodel.NewChatModel(context.Background(), modelConfig)
	if err != nil {
		return nil, fmt.Errorf("creating chat model: %w", err)
	}
	return &Generator{chatModel: chatModel, modelName: cfg.Model}, nil
}

// NewWithModel builds a Generator on an existing chat model, used by
// tests to inject a fake.
func NewWithModel(chatModel model.BaseChatModel) *Generator {
	return &Generator{chatModel: chatModel}
}

// Generate produces the content slides for a request. The slide count
// is clamped to [MinSlides, MaxSlides]; a zero count means
// DefaultSlides. A malformed model response degrades to the fallback
// outline rather than failing the request.
func (g *Generator) Generate(ctx context.Context, req Request) ([]Slide, error) {
	req = clamp(req)

	if g.chatModel == nil {
		return stubOutline(req), nil
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt(req.Tone)},
		{Role: schema.User, Content: userPrompt(req)},
	}

	resp, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat model: %w", err)
	}

	raw := stripFences(resp.Content)
	klog.V(6).Infof("outline response: %.400s", raw)

	slides, err := parseSlides(raw)
	if err != nil {
		klog.Errorf("outline JSON parse failed: %v", err)
		return fallbackOutline(req), nil
	}
	return slides, nil
}

func clamp(req Request) Request {
	if req.NumSlides == 0 {
		req.NumSlides = DefaultSlides
	}
	if req.NumSlides < MinSlides {
		req.NumSlides = MinSlides
	}
	if req.NumSlides > MaxSlides {
		req.NumSlides = MaxSlides
	}
	return req
}

// stripFences removes markdown code fences that models add despite
// being told not to.
func stripFences(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}

// parseSlides decodes the model's JSON array, keeping only items that
// carry both a title and content, and coercing every bullet to a
// string.
func parseSlides(raw string) ([]Slide, error) {
	var items []struct {
		Title   string `json:"title"`
		Content []any  `json:"content"`
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}

	var slides []Slide
	for _, item := range items {
		if item.Title == "" || len(item.Content) == 0 {
			continue
		}
		s := Slide{Title: item.Title}
		for _, c := range item.Content {
			if c == nil {
				continue
			}
			text := fmt.Sprint(c)
			if text != "" {
				s.Content = append(s.Content, text)
			}
		}
		slides = append(slides, s)
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("no usable slides in response")
	}
	return slides, nil
}

// stubOutline is the no-API-key outline: one slide per topic with two
// placeholder bullets.
func stubOutline(req Request) []Slide {
	slides := make([]Slide, 0, len(req.Topics))
	for _, topic := range req.Topics {
		slides = append(slides, Slide{
			Title: topic,
			Content: []string{
				fmt.Sprintf("Key point 1 about %s", topic),
				fmt.Sprintf("Key point 2 about %s", topic),
			},
		})
	}
	return slides
}

// fallbackOutline is the parse-failure outline: one slide per topic
// with four stock bullets tied to the deck title.
func fallbackOutline(req Request) []Slide {
	slides := make([]Slide, 0, len(req.Topics))
	for _, topic := range req.Topics {
		slides = append(slides, Slide{
			Title: topic,
			Content: []string{
				fmt.Sprintf("Introduction to %s and its significance in the context of %s.", topic, req.Title),
				fmt.Sprintf("Key strategies and best practices associated with %s.", topic),
				fmt.Sprintf("Real-world applications and measurable outcomes of %s.", topic),
				fmt.Sprintf("Actionable next steps to leverage %s effectively.", topic),
			},
		})
	}
	return slides
}
