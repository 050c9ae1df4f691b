package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompletions serves scripted chat completion responses and records requests
type fakeCompletions struct {
	mu        sync.Mutex
	responses []ChatResponse
	requests  []map[string]interface{}
	auth      []string
}

func (f *fakeCompletions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var req map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.requests = append(f.requests, req)
	f.auth = append(f.auth, r.Header.Get("Authorization"))

	if len(f.responses) == 0 {
		http.Error(w, "no more responses", http.StatusInternalServerError)
		return
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	json.NewEncoder(w).Encode(resp)
}

func textResponse(text string) ChatResponse {
	return ChatResponse{Choices: []Choice{{Message: ChatMessage{Role: "assistant", Content: strPtr(text)}, FinishReason: "stop"}}}
}

func toolResponse(names ...string) ChatResponse {
	msg := ChatMessage{Role: "assistant"}
	for i, name := range names {
		msg.ToolCalls = append(msg.ToolCalls, ChatToolCall{
			ID:       name + "-" + string(rune('a'+i)),
			Type:     "function",
			Function: ChatFunctionCall{Name: name, Arguments: "{}"},
		})
	}
	return ChatResponse{Choices: []Choice{{Message: msg, FinishReason: "tool_calls"}}}
}

func TestAIClientGenerateText(t *testing.T) {
	fake := &fakeCompletions{responses: []ChatResponse{textResponse("Hello! I can help with equipment health.")}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c := NewAIClient(srv.URL, "test-model", "secret", 0)
	resp, err := c.Generate(context.Background(), &GenerateRequest{System: "sys", Prompt: "hi", Tools: NewTools(testStore(t))})
	require.NoError(t, err)
	assert.Equal(t, "Hello! I can help with equipment health.", resp.Text)
	assert.Equal(t, 0, resp.ToolCalls)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, "test-model", req["model"])
	assert.Equal(t, "auto", req["tool_choice"])
	assert.Len(t, req["tools"], 4)
	msgs := req["messages"].([]interface{})
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]interface{})["role"])
	assert.Equal(t, "hi", msgs[1].(map[string]interface{})["content"])
	assert.Equal(t, "Bearer secret", fake.auth[0])
}

func TestAIClientGenerateToolRound(t *testing.T) {
	fake := &fakeCompletions{responses: []ChatResponse{
		toolResponse(ToolGetEquipmentHealth, ToolGetAnomalyAlerts),
		textResponse("EQP-003 is critical."),
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c := NewAIClient(srv.URL, "test-model", "", 0)
	resp, err := c.Generate(context.Background(), &GenerateRequest{Prompt: "status?", Tools: NewTools(testStore(t))})
	require.NoError(t, err)
	assert.Equal(t, "EQP-003 is critical.", resp.Text)
	assert.Equal(t, 2, resp.ToolCalls)
	assert.Equal(t, "", fake.auth[0])

	require.Len(t, fake.requests, 2)
	msgs := fake.requests[1]["messages"].([]interface{})
	// user, assistant tool calls, two tool results
	require.Len(t, msgs, 4)
	tool := msgs[2].(map[string]interface{})
	assert.Equal(t, "tool", tool["role"])
	assert.Equal(t, ToolGetEquipmentHealth, tool["name"])
	assert.Contains(t, tool["content"], "Assembly Line Motor")
	assert.Equal(t, ToolGetAnomalyAlerts, msgs[3].(map[string]interface{})["name"])
}

func TestAIClientGenerateNoOutput(t *testing.T) {
	for name, resp := range map[string]ChatResponse{
		"no choices": {},
		"nil content": {Choices: []Choice{{Message: ChatMessage{Role: "assistant"}}}},
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(&fakeCompletions{responses: []ChatResponse{resp}})
			defer srv.Close()

			_, err := NewAIClient(srv.URL, "m", "", 0).Generate(context.Background(), &GenerateRequest{Prompt: "x"})
			assert.True(t, errors.Is(err, ErrNoOutput))
		})
	}
}

func TestAIClientGenerateTooManyRounds(t *testing.T) {
	fake := &fakeCompletions{}
	for i := 0; i < 3; i++ {
		fake.responses = append(fake.responses, toolResponse(ToolGetMaintenanceLogs))
	}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	_, err := NewAIClient(srv.URL, "m", "", 2).Generate(context.Background(), &GenerateRequest{Prompt: "x", Tools: NewTools(testStore(t))})
	assert.True(t, errors.Is(err, ErrTooManyToolRounds))
	assert.Len(t, fake.requests, 3)
}

func TestAIClientAPIError(t *testing.T) {
	srv := httptest.NewServer(&fakeCompletions{})
	defer srv.Close()

	_, err := NewAIClient(srv.URL, "m", "", 0).Generate(context.Background(), &GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
