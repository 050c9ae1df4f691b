package httpapi

import (
	"errors"
	"net/http"

	"github.com/korylprince/proactiveshield-server/api"
	"github.com/korylprince/proactiveshield-server/chatbot"
	"github.com/korylprince/proactiveshield-server/query"
)

//ErrorResponse represents an HTTP error. Kind is set for flow failures and Detail for client errors.
type ErrorResponse struct {
	Code   int    `json:"code"`
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Detail string `json:"detail,omitempty"`
}

//handleError returns a handlerResponse response for the given code
func handleError(code int, err error) *handlerResponse {
	return &handlerResponse{Code: code, Body: &ErrorResponse{Code: code, Error: http.StatusText(code)}, Err: err}
}

//handleUserError returns a handlerResponse for the given code that tells the client what was wrong
func handleUserError(code int, err error, detail error) *handlerResponse {
	resp := handleError(code, err)
	resp.Body.(*ErrorResponse).Detail = detail.Error()
	return resp
}

//notFoundHandler returns a 404 handlerResponse
func notFoundHandler(w http.ResponseWriter, r *http.Request) *handlerResponse {
	return handleError(http.StatusNotFound, errors.New("Could not find handler"))
}

//methodNotAllowedHandler returns a 405 handlerResponse
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) *handlerResponse {
	return handleError(http.StatusMethodNotAllowed, errors.New("Method not allowed"))
}

//checkAPIError checks an api.Error or query.Error and returns a handlerResponse for it, or nil if there was no error
func checkAPIError(err error) *handlerResponse {
	if err == nil {
		return nil
	}

	var qErr *query.Error
	if errors.As(err, &qErr) {
		return handleUserError(http.StatusBadRequest, err, qErr)
	}

	var e *api.Error
	if errors.As(err, &e) && e.Type == api.ErrorTypeUser {
		return handleUserError(http.StatusBadRequest, err, e)
	}
	return handleError(http.StatusInternalServerError, err)
}

//flowErrorCodes maps flow failure kinds to HTTP status codes
var flowErrorCodes = map[chatbot.ErrorKind]int{
	chatbot.ErrorKindValidation:    http.StatusBadRequest,
	chatbot.ErrorKindGeneration:    http.StatusBadGateway,
	chatbot.ErrorKindToolExecution: http.StatusInternalServerError,
	chatbot.ErrorKindTimeout:       http.StatusGatewayTimeout,
}

//checkFlowError checks a chatbot.Error and returns a handlerResponse for it, or nil if there was no error
func checkFlowError(err error) *handlerResponse {
	if err == nil {
		return nil
	}

	var e *chatbot.Error
	if !errors.As(err, &e) {
		return handleError(http.StatusInternalServerError, err)
	}

	code, ok := flowErrorCodes[e.Kind]
	if !ok {
		code = http.StatusInternalServerError
	}

	resp := handleError(code, err)
	body := resp.Body.(*ErrorResponse)
	body.Kind = e.Kind.String()
	if e.Kind == chatbot.ErrorKindValidation && e.Err != nil {
		body.Detail = e.Err.Error()
	}
	return resp
}
