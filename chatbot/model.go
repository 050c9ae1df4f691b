package chatbot

import "context"

// DefaultMaxToolRounds bounds the tool call loop of a single generation
const DefaultMaxToolRounds = 5

// GenerateRequest is one generation: a prompt, a system instruction and the tools the model may call
type GenerateRequest struct {
	System string
	Prompt string
	Tools  []Tool
}

// GenerateResponse is the final text of a generation
type GenerateResponse struct {
	Text string
	// ToolCalls is the number of tool calls the model made before answering
	ToolCalls int
}

// Model generates text, running any tool calls the model requests before it answers.
// Implementations return ErrNoOutput if the provider answered without any output.
type Model interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}
