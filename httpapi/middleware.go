package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"text/template"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//RequestIDHeader is the response header carrying the request id
const RequestIDHeader = "X-Request-ID"

//APIKeyHeader is the request header carrying the API key
const APIKeyHeader = "X-API-Key"

type handlerResponse struct {
	Code int
	Body interface{}
	Err  error
}

type returnHandler func(http.ResponseWriter, *http.Request) *handlerResponse

const logTemplate = "{{.Date}} {{.RequestID}} {{.Method}} {{.Path}}{{if .Query}}?{{.Query}}{{end}} {{.Code}} ({{.Status}}) {{.Duration}}{{if .Err}}, Error: {{.Err}}{{end}}\n"

var logTmpl = template.Must(template.New("log").Parse(logTemplate))

type logData struct {
	Date      string
	RequestID string
	Status    string
	Code      int
	Method    string
	Path      string
	Query     string
	Duration  time.Duration
	Err       error
}

func writeLog(writer io.Writer, r *http.Request, id string, code int, start time.Time, err error) {
	if tErr := logTmpl.Execute(writer, &logData{
		Date:      time.Now().Format("2006-01-02:15:04:05 -0700"),
		RequestID: id,
		Status:    http.StatusText(code),
		Code:      code,
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     logQuery(r),
		Duration:  time.Since(start).Round(time.Millisecond),
		Err:       err,
	}); tErr != nil {
		panic(tErr)
	}
}

//apiKeyParam is the query parameter that may carry the API key
const apiKeyParam = "api_key"

//logQuery returns the raw query with any api_key parameter removed
func logQuery(r *http.Request) string {
	q := r.URL.Query()
	if _, ok := q[apiKeyParam]; !ok {
		return r.URL.RawQuery
	}
	q.Del(apiKeyParam)
	return q.Encode()
}

func logMiddleware(next returnHandler, writer io.Writer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)

		resp := next(w, r)
		writeLog(writer, r, id, resp.Code, start, resp.Err)
	})
}

func jsonMiddleware(next returnHandler) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		var resp *handlerResponse

		if r.Method != "GET" && r.ContentLength != 0 {
			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil {
				resp = handleError(http.StatusBadRequest, errors.New("Could not parse Content-Type"))
				goto serve
			}
			if mediaType != "application/json" {
				resp = handleError(http.StatusBadRequest, errors.New("Content-Type not application/json"))
				goto serve
			}
		}

		resp = next(w, r)

	serve:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Code)
		e := json.NewEncoder(w)
		err := e.Encode(resp.Body)
		if err != nil {
			return handleError(http.StatusInternalServerError, fmt.Errorf("Could encode json: %v", err))
		}
		return resp
	}
}

//latencyMiddleware delays the response by d, returning early if the client goes away
func latencyMiddleware(next returnHandler, d time.Duration) returnHandler {
	if d <= 0 {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case <-r.Context().Done():
			return handleError(http.StatusServiceUnavailable, fmt.Errorf("Request canceled: %v", r.Context().Err()))
		}
		return next(w, r)
	}
}

//checkAPIKey returns an error if hash is set and key does not match it
func checkAPIKey(hash []byte, key string) error {
	if len(hash) == 0 {
		return nil
	}
	if key == "" {
		return errors.New(APIKeyHeader + " header empty")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(key)); err != nil {
		return fmt.Errorf("Could not verify API key: %w", err)
	}
	return nil
}

func apiKeyMiddleware(next returnHandler, hash []byte) returnHandler {
	if len(hash) == 0 {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		if err := checkAPIKey(hash, r.Header.Get(APIKeyHeader)); err != nil {
			return handleError(http.StatusUnauthorized, err)
		}
		return next(w, r)
	}
}

//wsMiddleware checks the API key before the websocket upgrade and logs the connection when it closes.
//Browsers cannot set headers on websocket requests, so the key may also be passed as the api_key query parameter.
func wsMiddleware(next http.Handler, hash []byte, writer io.Writer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)

		key := r.Header.Get(APIKeyHeader)
		if key == "" {
			key = r.URL.Query().Get(apiKeyParam)
		}
		if err := checkAPIKey(hash, key); err != nil {
			resp := handleError(http.StatusUnauthorized, err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(resp.Code)
			json.NewEncoder(w).Encode(resp.Body)
			writeLog(writer, r, id, resp.Code, start, err)
			return
		}

		next.ServeHTTP(w, r)
		writeLog(writer, r, id, http.StatusSwitchingProtocols, start, nil)
	})
}
