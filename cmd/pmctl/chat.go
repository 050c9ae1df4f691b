package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/korylprince/proactiveshield-server/chatbot"
)

//Transcript roles
const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

type turn struct {
	Role string
	Text string
}

//transcript is the local conversation history. The server keeps none.
type transcript struct {
	turns []turn
}

func (t *transcript) add(role, text string) {
	t.turns = append(t.turns, turn{Role: role, Text: text})
}

//rollback removes the trailing user turn added before a failed exchange
func (t *transcript) rollback() {
	if n := len(t.turns); n > 0 && t.turns[n-1].Role == roleUser {
		t.turns = t.turns[:n-1]
	}
}

//errAssistant is a server-side failure reported over the websocket
type errAssistant struct {
	kind string
	msg  string
}

func (e *errAssistant) Error() string {
	if e.kind == "" {
		return e.msg
	}
	return e.kind + ": " + e.msg
}

//chatSession sends queries over one websocket connection and records them in a transcript
type chatSession struct {
	conn       *websocket.Conn
	transcript transcript
}

//ask sends message and returns the assistant response. The user turn is recorded optimistically
//and removed again if the exchange fails.
func (s *chatSession) ask(message string) (string, error) {
	s.transcript.add(roleUser, message)

	resp, err := s.exchange(message)
	if err != nil {
		s.transcript.rollback()
		return "", err
	}

	s.transcript.add(roleAssistant, resp)
	return resp, nil
}

func (s *chatSession) exchange(message string) (string, error) {
	if err := s.conn.WriteJSON(chatbot.ClientMessage{Message: message}); err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	var sb strings.Builder
	for {
		var msg chatbot.ServerMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return "", fmt.Errorf("failed to read response: %w", err)
		}

		switch msg.Type {
		case chatbot.MessageTypeText:
			sb.WriteString(msg.Content)
		case chatbot.MessageTypeDone:
			return sb.String(), nil
		case chatbot.MessageTypeError:
			return "", &errAssistant{kind: msg.Kind, msg: msg.Error}
		}
	}
}

//runChat runs the interactive loop until EOF, "exit", or "quit"
func runChat(ctx context.Context, c *client, in io.Reader, out io.Writer) error {
	conn, err := c.dial(ctx, "/assistant/ws")
	if err != nil {
		return err
	}
	defer conn.Close()

	s := &chatSession{conn: conn}
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "Ask ProactiveShield AI about equipment health, alerts, predictions, or maintenance history.")
	for {
		fmt.Fprint(out, "\nYou: ")
		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			fmt.Fprintln(out, "\nGoodbye!")
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		resp, err := s.ask(input)
		if err != nil {
			var ae *errAssistant
			if !errors.As(err, &ae) {
				return err
			}
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Assistant: %s\n", resp)
	}
}
