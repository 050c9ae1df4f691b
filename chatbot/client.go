package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ChatMessage represents a chat message in OpenAI format
type ChatMessage struct {
	Role       string         `json:"role"`                   // system, user, assistant, tool
	Content    *string        `json:"content"`                // text content (nil for tool_calls-only messages)
	ToolCalls  []ChatToolCall `json:"tool_calls,omitempty"`   // for assistant tool call requests
	ToolCallID string         `json:"tool_call_id,omitempty"` // for tool response messages
	Name       string         `json:"name,omitempty"`         // tool name (in tool responses)
}

// MarshalJSON sends null for empty content strings.
// Some APIs treat empty string content as prefill.
func (m ChatMessage) MarshalJSON() ([]byte, error) {
	type Alias ChatMessage
	aux := struct {
		Alias
		Content *string `json:"content"`
	}{
		Alias: Alias(m),
	}
	if m.Content != nil && *m.Content != "" {
		aux.Content = m.Content
	}
	return json.Marshal(aux)
}

// ChatToolCall represents a tool call request from the assistant
type ChatToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"` // always "function"
	Function ChatFunctionCall `json:"function"`
}

// ChatFunctionCall contains the function name and arguments
type ChatFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string
}

// ChatTool represents an OpenAI function tool
type ChatTool struct {
	Type     string           `json:"type"`
	Function ChatToolFunction `json:"function"`
}

// ChatToolFunction describes a function tool
type ChatToolFunction struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters"`
}

// ChatRequest is the request body for the chat completions API
type ChatRequest struct {
	Model      string        `json:"model"`
	Messages   []ChatMessage `json:"messages"`
	Tools      []ChatTool    `json:"tools,omitempty"`
	ToolChoice string        `json:"tool_choice,omitempty"` // "auto", "none", or specific
	Stream     bool          `json:"stream"`
}

// ChatResponse is the response from the chat completions API
type ChatResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice represents a single completion choice
type Choice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// Usage contains token usage information
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// AIClient is a Model backed by an OpenAI-compatible chat completions API
type AIClient struct {
	endpoint      string
	model         string
	apiKey        string
	maxToolRounds int
	httpClient    *http.Client
}

// NewAIClient creates a new AI client. apiKey may be empty for endpoints without auth.
func NewAIClient(endpoint, model, apiKey string, maxToolRounds int) *AIClient {
	if maxToolRounds <= 0 {
		maxToolRounds = DefaultMaxToolRounds
	}
	return &AIClient{
		endpoint:      endpoint,
		model:         model,
		apiKey:        apiKey,
		maxToolRounds: maxToolRounds,
		httpClient:    &http.Client{},
	}
}

// Chat makes a non-streaming chat request
func (c *AIClient) Chat(ctx context.Context, messages []ChatMessage, tools []ChatTool) (*ChatResponse, error) {
	req := ChatRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
		Stream:   false,
	}
	if len(tools) > 0 {
		req.ToolChoice = "auto"
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &chatResp, nil
}

// Generate runs the tool call loop until the model answers without tool calls
func (c *AIClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	executor := NewToolExecutor(req.Tools)
	messages := buildMessages(req)

	var tools []ChatTool
	for _, t := range req.Tools {
		tools = append(tools, ChatTool{
			Type: "function",
			Function: ChatToolFunction{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.InputSchema(),
			},
		})
	}

	out := new(GenerateResponse)
	for round := 0; round <= c.maxToolRounds; round++ {
		resp, err := c.Chat(ctx, messages, tools)
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, ErrNoOutput
		}

		assistantMsg := resp.Choices[0].Message
		if len(assistantMsg.ToolCalls) == 0 {
			if assistantMsg.Content == nil {
				return nil, ErrNoOutput
			}
			out.Text = *assistantMsg.Content
			return out, nil
		}

		messages = append(messages, assistantMsg)

		calls := make([]ToolCall, len(assistantMsg.ToolCalls))
		for i, tc := range assistantMsg.ToolCalls {
			calls[i] = ToolCall{ID: tc.ID, Name: tc.Function.Name, Arguments: json.RawMessage(tc.Function.Arguments)}
		}
		out.ToolCalls += len(calls)

		for _, tr := range executor.ExecuteAll(ctx, calls) {
			content := tr.Content
			messages = append(messages, ChatMessage{
				Role:       "tool",
				Content:    &content,
				ToolCallID: tr.ID,
				Name:       tr.Name,
			})
		}
	}

	return nil, ErrTooManyToolRounds
}

func buildMessages(req *GenerateRequest) []ChatMessage {
	var messages []ChatMessage
	if req.System != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: strPtr(req.System)})
	}
	return append(messages, ChatMessage{Role: "user", Content: strPtr(req.Prompt)})
}

func strPtr(s string) *string {
	return &s
}
