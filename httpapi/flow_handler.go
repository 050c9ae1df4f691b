package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/korylprince/proactiveshield-server/api"
	"github.com/korylprince/proactiveshield-server/chatbot"
)

//maxBodySize bounds flow request bodies
const maxBodySize = 256 * 1024

//decodeInput reads the request body and validates it against schema before decoding it into v
func decodeInput(r *http.Request, schema *chatbot.Schema, v interface{}) *handlerResponse {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return handleError(http.StatusBadRequest, fmt.Errorf("Could not read body: %v", err))
	}
	if len(body) > maxBodySize {
		return handleError(http.StatusRequestEntityTooLarge, fmt.Errorf("Body larger than %d bytes", maxBodySize))
	}
	return checkFlowError(chatbot.DecodeInput(body, schema, v))
}

//POST /assistant/chat
func handleChatWithAssistant(f *chatbot.Flows) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		var in chatbot.AssistantInput
		if resp := decodeInput(r, chatbot.AssistantInputSchema, &in); resp != nil {
			return resp
		}

		out, err := f.ChatWithAssistant(r.Context(), in)
		if resp := checkFlowError(err); resp != nil {
			return resp
		}

		return &handlerResponse{Code: http.StatusOK, Body: out}
	}
}

//GET or POST /briefing/daily
func handleGenerateDailyBriefing(f *chatbot.Flows) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		out, err := f.GenerateDailyBriefing(r.Context())
		if resp := checkFlowError(err); resp != nil {
			return resp
		}

		return &handlerResponse{Code: http.StatusOK, Body: out}
	}
}

//POST /maintenance/summary
func handleGenerateMaintenanceSummary(f *chatbot.Flows) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		var in chatbot.SummaryInput
		if resp := decodeInput(r, chatbot.SummaryInputSchema, &in); resp != nil {
			return resp
		}

		out, err := f.GenerateMaintenanceSummary(r.Context(), in)
		if resp := checkFlowError(err); resp != nil {
			return resp
		}

		return &handlerResponse{Code: http.StatusOK, Body: out}
	}
}

//GET /maintenance/summary/defaults
func handleReadSummaryDefaults(w http.ResponseWriter, r *http.Request) *handlerResponse {
	return &handlerResponse{Code: http.StatusOK, Body: api.DefaultSummaryInput()}
}
