package chatbot

import (
	"context"
	"fmt"
	"strings"
)

// LocalModel is a deterministic offline Model for development without a provider.
// It calls every bound tool once and echoes the results; without tools it echoes a digest of the prompt.
type LocalModel struct{}

// NewLocalModel creates a new LocalModel
func NewLocalModel() *LocalModel {
	return &LocalModel{}
}

// Generate implements Model
func (m *LocalModel) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	if len(req.Tools) == 0 {
		sb.WriteString("Offline summary (no language model configured):\n")
		for _, line := range strings.Split(strings.TrimSpace(req.Prompt), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				fmt.Fprintf(&sb, "- %s\n", line)
			}
		}
		return &GenerateResponse{Text: sb.String()}, nil
	}

	calls := make([]ToolCall, len(req.Tools))
	for i, t := range req.Tools {
		calls[i] = ToolCall{ID: fmt.Sprintf("local-%d", i), Name: t.Name()}
	}

	sb.WriteString("Offline answer (no language model configured). Tool results:\n")
	for _, tr := range NewToolExecutor(req.Tools).ExecuteAll(ctx, calls) {
		fmt.Fprintf(&sb, "- **%s**: %s\n", tr.Name, tr.Content)
	}
	return &GenerateResponse{Text: sb.String(), ToolCalls: len(calls)}, nil
}
