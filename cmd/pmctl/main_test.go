package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/korylprince/proactiveshield-server/api"
	"github.com/korylprince/proactiveshield-server/chatbot"
	"github.com/korylprince/proactiveshield-server/httpapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type modelFunc func(ctx context.Context, req *chatbot.GenerateRequest) (*chatbot.GenerateResponse, error)

func (f modelFunc) Generate(ctx context.Context, req *chatbot.GenerateRequest) (*chatbot.GenerateResponse, error) {
	return f(ctx, req)
}

func newServer(t *testing.T, model chatbot.Model) string {
	t.Helper()
	store, err := api.NewStore(api.DefaultFixtures())
	require.NoError(t, err)
	if model == nil {
		model = chatbot.NewLocalModel()
	}
	srv := httptest.NewServer(httpapi.NewRouter(io.Discard, &httpapi.Options{
		Prefix: "/api",
		Store:  store,
		Flows:  chatbot.NewFlows(model, chatbot.NewTools(store)),
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func run(t *testing.T, server string, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--server", server}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommands(t *testing.T) {
	server := newServer(t, nil)

	out, err := run(t, server, "", "equipment")
	require.NoError(t, err)
	assert.Contains(t, out, "Assembly Line Motor")
	assert.Contains(t, out, "EQP-004")

	out, err = run(t, server, "", "alerts", "--filter", "severity=High")
	require.NoError(t, err)
	assert.Contains(t, out, "Vibration spike detected")
	assert.NotContains(t, out, "ALT-002")

	out, err = run(t, server, "", "predictions", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"date": "Today"`)

	out, err = run(t, server, "", "logs", "-f", "equipment=EQP-001")
	require.NoError(t, err)
	assert.Contains(t, out, "LOG-005")
	assert.NotContains(t, out, "LOG-002")

	_, err = run(t, server, "", "logs", "-f", "nope")
	assert.Error(t, err)

	_, err = run(t, server, "", "equipment", "-f", "color=red")
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.Status)
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, newServer(t, nil), "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Critical")
	assert.Contains(t, out, "85%")
}

func TestBriefingCommand(t *testing.T) {
	out, err := run(t, newServer(t, modelFunc(func(ctx context.Context, req *chatbot.GenerateRequest) (*chatbot.GenerateResponse, error) {
		return &chatbot.GenerateResponse{Text: "- **EQP-003 is critical**"}, nil
	})), "", "briefing")
	require.NoError(t, err)
	assert.Equal(t, "- **EQP-003 is critical**\n", out)
}

func TestSummaryCommand(t *testing.T) {
	var got string
	server := newServer(t, modelFunc(func(ctx context.Context, req *chatbot.GenerateRequest) (*chatbot.GenerateResponse, error) {
		got = req.Prompt
		return &chatbot.GenerateResponse{Text: "summary"}, nil
	}))

	out, err := run(t, server, "", "summary")
	require.NoError(t, err)
	assert.Equal(t, "summary\n", out)
	assert.Contains(t, got, "Prediction for EQP-003")

	path := filepath.Join(t.TempDir(), "preds.txt")
	require.NoError(t, os.WriteFile(path, []byte("EQP-009 will fail"), 0o644))
	_, err = run(t, server, "", "summary", "--predictions-file", path)
	require.NoError(t, err)
	assert.Contains(t, got, "Failure Predictions: EQP-009 will fail")
	assert.Contains(t, got, "Log Date: 2023-08-01")
}

func TestChatCommand(t *testing.T) {
	server := newServer(t, modelFunc(func(ctx context.Context, req *chatbot.GenerateRequest) (*chatbot.GenerateResponse, error) {
		if req.Prompt == "fail" {
			return nil, errors.New("provider down")
		}
		return &chatbot.GenerateResponse{Text: "answer: " + req.Prompt}, nil
	}))

	out, err := run(t, server, "hello\nfail\n\nquit\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "Assistant: answer: hello")
	assert.Contains(t, out, "Error: Generation Error")
	assert.Contains(t, out, "Goodbye!")
}

func TestChatSessionRollback(t *testing.T) {
	server := newServer(t, modelFunc(func(ctx context.Context, req *chatbot.GenerateRequest) (*chatbot.GenerateResponse, error) {
		if req.Prompt == "fail" {
			return nil, errors.New("provider down")
		}
		return &chatbot.GenerateResponse{Text: "answer: " + req.Prompt}, nil
	}))

	conn, err := newClient(server, "").dial(context.Background(), "/assistant/ws")
	require.NoError(t, err)
	defer conn.Close()
	s := &chatSession{conn: conn}

	resp, err := s.ask("first")
	require.NoError(t, err)
	assert.Equal(t, "answer: first", resp)

	_, err = s.ask("fail")
	var ae *errAssistant
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, chatbot.ErrorKindGeneration.String(), ae.kind)

	_, err = s.ask("   ")
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, chatbot.ErrorKindValidation.String(), ae.kind)

	assert.Equal(t, []turn{
		{Role: roleUser, Text: "first"},
		{Role: roleAssistant, Text: "answer: first"},
	}, s.transcript.turns)

	_, err = s.ask("second")
	require.NoError(t, err)
	assert.Len(t, s.transcript.turns, 4)
}

func TestTranscriptRollbackOnlyUser(t *testing.T) {
	var tr transcript
	tr.rollback()
	assert.Empty(t, tr.turns)

	tr.add(roleUser, "q")
	tr.add(roleAssistant, "a")
	tr.rollback()
	assert.Len(t, tr.turns, 2)
}
