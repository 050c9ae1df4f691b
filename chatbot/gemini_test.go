package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"
)

type fakeGenerator struct {
	responses []*genai.GenerateContentResponse
	contents  [][]*genai.Content
	configs   []*genai.GenerateContentConfig
	models    []string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.models = append(f.models, model)
	f.contents = append(f.contents, append([]*genai.Content(nil), contents...))
	f.configs = append(f.configs, config)
	if len(f.responses) == 0 {
		return nil, errors.New("no more responses")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func geminiResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Role: string(genai.RoleModel), Parts: parts}}}}
}

func TestGeminiGenerateText(t *testing.T) {
	fake := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		geminiResponse(&genai.Part{Text: "thinking", Thought: true}, &genai.Part{Text: "Hello, "}, &genai.Part{Text: "engineer."}),
	}}
	g := newGeminiModel(fake, "", 0)
	assert.Equal(t, "Gemini:"+DefaultGeminiModel, g.Name())

	resp, err := g.Generate(context.Background(), &GenerateRequest{System: "be brief", Prompt: "hi", Tools: NewTools(testStore(t))})
	require.NoError(t, err)
	assert.Equal(t, "Hello, engineer.", resp.Text)
	assert.Equal(t, 0, resp.ToolCalls)

	cfg := fake.configs[0]
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "be brief", cfg.SystemInstruction.Parts[0].Text)
	require.Len(t, cfg.Tools, 1)
	decls := cfg.Tools[0].FunctionDeclarations
	require.Len(t, decls, 4)
	assert.Equal(t, ToolGetEquipmentHealth, decls[0].Name)
	assert.Nil(t, decls[0].Parameters)
}

func TestGeminiGenerateFunctionCalls(t *testing.T) {
	fake := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		geminiResponse(
			&genai.Part{FunctionCall: &genai.FunctionCall{ID: "1", Name: ToolGetFailurePredictions}},
			&genai.Part{FunctionCall: &genai.FunctionCall{ID: "2", Name: "unknownTool"}},
		),
		geminiResponse(&genai.Part{Text: "Failure probability is 85% today."}),
	}}
	g := newGeminiModel(fake, "gemini-test", 5)

	resp, err := g.Generate(context.Background(), &GenerateRequest{Prompt: "risk?", Tools: NewTools(testStore(t))})
	require.NoError(t, err)
	assert.Equal(t, "Failure probability is 85% today.", resp.Text)
	assert.Equal(t, 2, resp.ToolCalls)
	assert.Equal(t, []string{"gemini-test", "gemini-test"}, fake.models)

	second := fake.contents[1]
	require.Len(t, second, 3)
	fr := second[2].Parts
	require.Len(t, fr, 2)
	assert.Equal(t, ToolGetFailurePredictions, fr[0].FunctionResponse.Name)
	output, ok := fr[0].FunctionResponse.Response["output"].([]interface{})
	require.True(t, ok)
	assert.Len(t, output, 7)
	assert.Contains(t, fr[1].FunctionResponse.Response, "error")
}

func TestGeminiGenerateNoOutput(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"no candidates": {},
		"no parts":      geminiResponse(),
	} {
		t.Run(name, func(t *testing.T) {
			g := newGeminiModel(&fakeGenerator{responses: []*genai.GenerateContentResponse{resp}}, "", 0)
			_, err := g.Generate(context.Background(), &GenerateRequest{Prompt: "x"})
			assert.True(t, errors.Is(err, ErrNoOutput))
		})
	}
}

func TestGeminiGenerateTooManyRounds(t *testing.T) {
	fake := new(fakeGenerator)
	for i := 0; i < 2; i++ {
		fake.responses = append(fake.responses, geminiResponse(&genai.Part{FunctionCall: &genai.FunctionCall{Name: ToolGetMaintenanceLogs}}))
	}
	_, err := newGeminiModel(fake, "", 1).Generate(context.Background(), &GenerateRequest{Prompt: "x", Tools: NewTools(testStore(t))})
	assert.True(t, errors.Is(err, ErrTooManyToolRounds))
}

func TestLocalModel(t *testing.T) {
	m := NewLocalModel()

	resp, err := m.Generate(context.Background(), &GenerateRequest{Prompt: "line one\n\nline two"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "- line one\n- line two\n")

	resp, err = m.Generate(context.Background(), &GenerateRequest{Prompt: "status", Tools: NewTools(testStore(t))})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.ToolCalls)
	assert.Contains(t, resp.Text, "**getEquipmentHealth**")
	assert.Contains(t, resp.Text, "Assembly Line Motor")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Generate(ctx, &GenerateRequest{Prompt: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeminiGenerateThoughtOnly(t *testing.T) {
	for name, parts := range map[string][]*genai.Part{
		"thought only": {{Text: "thinking", Thought: true}},
		"empty text":   {{Text: ""}},
	} {
		t.Run(name, func(t *testing.T) {
			g := newGeminiModel(&fakeGenerator{responses: []*genai.GenerateContentResponse{geminiResponse(parts...)}}, "", 0)
			resp, err := g.Generate(context.Background(), &GenerateRequest{Prompt: "summarize"})
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrNoOutput)
		})
	}

	// a flow surfaces it as a generation failure instead of an empty summary
	g := newGeminiModel(&fakeGenerator{responses: []*genai.GenerateContentResponse{
		geminiResponse(&genai.Part{Text: "thinking", Thought: true}),
	}}, "", 0)
	_, err := NewFlows(g, nil).GenerateMaintenanceSummary(context.Background(), SummaryInput{FailurePredictions: "a", MaintenanceLogs: "b"})
	assert.True(t, IsKind(err, ErrorKindGeneration))
}
