package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// ToolCall is a provider-neutral request from the model to run a tool
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ToolResult is the outcome of a ToolCall. Content is always valid JSON;
// on failure it is an {"error": "..."} object and Err is set.
type ToolResult struct {
	ID      string
	Name    string
	Content string
	Err     error
}

// ToolExecutor dispatches tool calls to a fixed set of Tools
type ToolExecutor struct {
	tools map[string]Tool
}

// NewToolExecutor creates a new tool executor for tools
func NewToolExecutor(tools []Tool) *ToolExecutor {
	e := &ToolExecutor{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		e.tools[t.Name()] = t
	}
	return e
}

// Execute runs a tool call and returns the JSON result
func (e *ToolExecutor) Execute(ctx context.Context, name string, arguments json.RawMessage) (string, error) {
	tool, ok := e.tools[name]
	if !ok {
		return "", &Error{Kind: ErrorKindToolExecution, Description: fmt.Sprintf("Could not find tool %q", name), Err: ErrUnknownTool}
	}

	arguments = bytes.TrimSpace(arguments)
	if len(arguments) == 0 || bytes.Equal(arguments, []byte("null")) {
		arguments = json.RawMessage("{}")
	}
	if err := tool.InputSchema().ValidateJSON(arguments); err != nil {
		return "", &Error{Kind: ErrorKindToolExecution, Description: fmt.Sprintf("Could not validate arguments for %s", name), Err: err}
	}

	start := time.Now()
	result, err := tool.Invoke(ctx, arguments)
	if err != nil {
		return "", &Error{Kind: ErrorKindToolExecution, Description: fmt.Sprintf("Could not execute %s", name), Err: err}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", &Error{Kind: ErrorKindToolExecution, Description: fmt.Sprintf("Could not marshal %s result", name), Err: err}
	}

	log.Printf("tool %s executed in %s", name, time.Since(start))
	return string(data), nil
}

// ExecuteAll runs calls in parallel and returns their results in call order
func (e *ToolExecutor) ExecuteAll(ctx context.Context, calls []ToolCall) []ToolResult {
	results := make([]ToolResult, len(calls))
	var wg sync.WaitGroup

	for i, call := range calls {
		wg.Add(1)
		go func(idx int, tc ToolCall) {
			defer wg.Done()
			content, err := e.Execute(ctx, tc.Name, tc.Arguments)
			if err != nil {
				log.Printf("tool %s failed: %v", tc.Name, err)
				msg, _ := json.Marshal(map[string]string{"error": err.Error()})
				content = string(msg)
			}
			results[idx] = ToolResult{
				ID:      tc.ID,
				Name:    tc.Name,
				Content: content,
				Err:     err,
			}
		}(i, call)
	}

	wg.Wait()
	return results
}
