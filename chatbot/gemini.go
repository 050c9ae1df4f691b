package chatbot

import (
	"context"
	"encoding/json"
	"strings"

	genai "google.golang.org/genai"
)

// DefaultGeminiModel is the Gemini model used when none is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// contentGenerator is the part of *genai.Models used by GeminiModel
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiModel is a Model backed by the Gemini API.
// Tool calls are sent back to the model as function responses.
type GeminiModel struct {
	models        contentGenerator
	model         string
	maxToolRounds int
}

// NewGeminiModel creates a Gemini client. If apiKey is empty, the genai client reads it from the environment.
func NewGeminiModel(ctx context.Context, apiKey, model string, maxToolRounds int) (*GeminiModel, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return newGeminiModel(cli.Models, model, maxToolRounds), nil
}

func newGeminiModel(models contentGenerator, model string, maxToolRounds int) *GeminiModel {
	if model == "" {
		model = DefaultGeminiModel
	}
	if maxToolRounds <= 0 {
		maxToolRounds = DefaultMaxToolRounds
	}
	return &GeminiModel{models: models, model: model, maxToolRounds: maxToolRounds}
}

// Name returns the provider and model name
func (g *GeminiModel) Name() string { return "Gemini:" + g.model }

// Generate runs the function calling loop until the model answers with text only
func (g *GeminiModel) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	executor := NewToolExecutor(req.Tools)

	config := new(genai.GenerateContentConfig)
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, len(req.Tools))
		for i, t := range req.Tools {
			decls[i] = &genai.FunctionDeclaration{Name: t.Name(), Description: t.Description()}
			// Gemini rejects OBJECT parameters without properties
			if in := t.InputSchema(); len(in.Properties) > 0 {
				decls[i].Parameters = in.Genai()
			}
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	out := new(GenerateResponse)

	for round := 0; round <= g.maxToolRounds; round++ {
		resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
		if err != nil {
			return nil, err
		}
		if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, ErrNoOutput
		}

		content := resp.Candidates[0].Content
		var calls []ToolCall
		var text []string
		for _, part := range content.Parts {
			if part == nil {
				continue
			}
			if fc := part.FunctionCall; fc != nil {
				args, err := json.Marshal(fc.Args)
				if err != nil {
					return nil, err
				}
				calls = append(calls, ToolCall{ID: fc.ID, Name: fc.Name, Arguments: args})
				continue
			}
			if !part.Thought && part.Text != "" {
				text = append(text, part.Text)
			}
		}

		if len(calls) == 0 {
			// thought-only or empty parts carry no answer
			if len(text) == 0 {
				return nil, ErrNoOutput
			}
			out.Text = strings.Join(text, "")
			return out, nil
		}

		contents = append(contents, content)
		out.ToolCalls += len(calls)

		results := executor.ExecuteAll(ctx, calls)
		parts := make([]*genai.Part, len(results))
		for i, tr := range results {
			parts[i] = &genai.Part{FunctionResponse: &genai.FunctionResponse{
				ID:       tr.ID,
				Name:     tr.Name,
				Response: functionResponse(tr),
			}}
		}
		contents = append(contents, &genai.Content{Role: string(genai.RoleUser), Parts: parts})
	}

	return nil, ErrTooManyToolRounds
}

// functionResponse uses the "output" and "error" keys Gemini expects
func functionResponse(tr ToolResult) map[string]any {
	if tr.Err != nil {
		return map[string]any{"error": tr.Err.Error()}
	}
	var v any
	if err := json.Unmarshal([]byte(tr.Content), &v); err != nil {
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{"output": v}
}
