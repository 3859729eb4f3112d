package outline

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/config"
)

type fakeChatModel struct {
	response string
	err      error
	lastIn   []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.lastIn = input
	if f.err != nil {
		return nil, f.err
	}
	return &schema.Message{Role: schema.Assistant, Content: f.response}, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestGenerateParsesModelResponse(t *testing.T) {
	fake := &fakeChatModel{response: "```json\n" + `[
		{"title": "Market Position", "content": ["We grew 40% year over year.", "Churn fell below 2%.", 42, null]},
		{"title": "", "content": ["dropped, no title"]},
		{"title": "Next Quarter", "content": ["Expand into two new regions."]}
	]` + "\n```"}
	g := NewWithModel(fake)

	slides, err := g.Generate(context.Background(), Request{
		Title:  "Board Update",
		Topics: []string{"growth", "plans"},
		Tone:   "executive",
	})
	require.NoError(t, err)
	require.Len(t, slides, 2)

	assert.Equal(t, "Market Position", slides[0].Title)
	// Non-string bullets are coerced, nil ones dropped.
	assert.Equal(t, []string{"We grew 40% year over year.", "Churn fell below 2%.", "42"}, slides[0].Content)
	assert.Equal(t, "Next Quarter", slides[1].Title)

	// The request shape reaches the model: system + user message.
	require.Len(t, fake.lastIn, 2)
	assert.Equal(t, schema.System, fake.lastIn[0].Role)
	assert.Contains(t, fake.lastIn[0].Content, "C-suite")
	assert.Equal(t, schema.User, fake.lastIn[1].Role)
	assert.Contains(t, fake.lastIn[1].Content, `"Board Update"`)
	assert.Contains(t, fake.lastIn[1].Content, "growth, plans")
}

func TestGenerateFallsBackOnBadJSON(t *testing.T) {
	fake := &fakeChatModel{response: "Sure! Here is your outline:\n1. First slide..."}
	g := NewWithModel(fake)

	slides, err := g.Generate(context.Background(), Request{
		Title:  "Platform Migration",
		Topics: []string{"timeline", "risks"},
	})
	require.NoError(t, err)
	require.Len(t, slides, 2)

	assert.Equal(t, "timeline", slides[0].Title)
	assert.Len(t, slides[0].Content, 4)
	assert.Contains(t, slides[0].Content[0], "Platform Migration")
}

func TestGenerateReturnsModelError(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("rate limited")}
	g := NewWithModel(fake)

	_, err := g.Generate(context.Background(), Request{Topics: []string{"a"}})
	assert.ErrorContains(t, err, "rate limited")
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	g, err := New(config.LLMConfig{})
	require.NoError(t, err)

	slides, err := g.Generate(context.Background(), Request{
		Title:  "Anything",
		Topics: []string{"alpha", "beta"},
	})
	require.NoError(t, err)
	require.Len(t, slides, 2)
	assert.Equal(t, "alpha", slides[0].Title)
	assert.Equal(t, []string{"Key point 1 about alpha", "Key point 2 about alpha"}, slides[0].Content)
}

func TestClampSlideCount(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultSlides},
		{1, MinSlides},
		{2, 2},
		{15, 15},
		{40, MaxSlides},
	}
	for _, tt := range tests {
		if got := clamp(Request{NumSlides: tt.in}).NumSlides; got != tt.want {
			t.Errorf("clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToneInstructionUnknown(t *testing.T) {
	assert.Equal(t, toneInstructions["professional"], toneInstruction("pirate"))
	assert.Equal(t, toneInstructions["technical"], toneInstruction("Technical"))
}
