package chatbot

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// maxClientMessage bounds a single client frame
	maxClientMessage = 16 * 1024
	writeWait        = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler handles WebSocket chat connections. Every message is an independent assistant query;
// the server keeps no conversation history.
type Handler struct {
	flows *Flows
}

// NewHandler creates a new chat handler
func NewHandler(flows *Flows) *Handler {
	return &Handler{flows: flows}
}

// ServeHTTP handles the WebSocket upgrade and reads messages until the client disconnects
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxClientMessage)

	for {
		var clientMsg ClientMessage
		if err := conn.ReadJSON(&clientMsg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("WebSocket read failed: %v", err)
			}
			return
		}

		if err := h.answer(r.Context(), conn, clientMsg.Message); err != nil {
			log.Printf("WebSocket write failed: %v", err)
			return
		}
	}
}

// answer runs one assistant query and writes either text followed by done, or a single error
func (h *Handler) answer(ctx context.Context, conn *websocket.Conn, message string) error {
	out, err := h.flows.ChatWithAssistant(ctx, AssistantInput{Query: message})
	if err != nil {
		return h.sendError(conn, err)
	}

	if err := h.write(conn, ServerMessage{Type: MessageTypeText, Content: out.Response}); err != nil {
		return err
	}
	return h.write(conn, ServerMessage{Type: MessageTypeDone})
}

func (h *Handler) write(conn *websocket.Conn, msg ServerMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func (h *Handler) sendError(conn *websocket.Conn, err error) error {
	msg := ServerMessage{Type: MessageTypeError, Kind: ErrorKindGeneration.String(), Error: "Sorry, I encountered an error. Please try again."}
	var e *Error
	if errors.As(err, &e) {
		msg.Kind = e.Kind.String()
		if e.Kind == ErrorKindValidation {
			msg.Error = e.Err.Error()
		}
	}
	return h.write(conn, msg)
}
