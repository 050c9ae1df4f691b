package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/korylprince/proactiveshield-server/api"
	"github.com/korylprince/proactiveshield-server/chatbot"
)

//Simulated backend latencies of the data endpoints, used when Options.SimulateLatency is set
const (
	EquipmentLatency   = 1000 * time.Millisecond
	AlertLatency       = 1500 * time.Millisecond
	PredictionLatency  = 1200 * time.Millisecond
	MaintenanceLatency = 500 * time.Millisecond
	SensorLatency      = 800 * time.Millisecond
)

//Options configures the HTTP API
type Options struct {
	//Prefix is stripped from request paths before routing, e.g. "/api"
	Prefix string
	Store  *api.Store
	Flows  *chatbot.Flows
	//SensorInterval is the push interval of the sensor stream
	SensorInterval time.Duration
	//SimulateLatency delays data endpoints like the original mock backend
	SimulateLatency bool
	//APIKeyHash is a bcrypt hash of the key required on flow endpoints. If empty, no key is required.
	APIKeyHash []byte
}

//NewRouter returns an HTTP router for the HTTP API
func NewRouter(w io.Writer, opts *Options) http.Handler {
	var latency = func(d time.Duration) time.Duration {
		if opts.SimulateLatency {
			return d
		}
		return 0
	}

	//construct middleware
	var m = func(h returnHandler) http.Handler {
		return logMiddleware(jsonMiddleware(h), w)
	}
	var data = func(h returnHandler, d time.Duration) http.Handler {
		return m(latencyMiddleware(h, latency(d)))
	}
	var flow = func(h returnHandler) http.Handler {
		return logMiddleware(jsonMiddleware(apiKeyMiddleware(h, opts.APIKeyHash)), w)
	}
	var ws = func(h http.Handler) http.Handler {
		return wsMiddleware(h, opts.APIKeyHash, w)
	}

	r := mux.NewRouter()

	r.Path("/equipment/health").Methods("GET").Handler(data(handleReadEquipment(opts.Store), EquipmentLatency))
	r.Path("/alerts").Methods("GET").Handler(data(handleReadAlerts(opts.Store), AlertLatency))
	r.Path("/predictions/failure").Methods("GET").Handler(data(handleReadFailurePredictions(opts.Store), PredictionLatency))
	r.Path("/maintenance-logs").Methods("GET").Handler(data(handleReadMaintenanceLogs(opts.Store), MaintenanceLatency))
	r.Path("/stats").Methods("GET").Handler(m(handleReadStats(opts.Store)))

	r.Path("/sensor-data/initial").Methods("GET").Handler(data(handleReadInitialSensorData, SensorLatency))
	r.Path("/sensor-data/stream").Methods("GET").Handler(ws(newSensorStream(opts.SensorInterval)))

	r.Path("/assistant/chat").Methods("POST").Handler(flow(handleChatWithAssistant(opts.Flows)))
	r.Path("/assistant/ws").Methods("GET").Handler(ws(chatbot.NewHandler(opts.Flows)))

	r.Path("/briefing/daily").Methods("GET", "POST").Handler(flow(handleGenerateDailyBriefing(opts.Flows)))

	r.Path("/maintenance/summary").Methods("POST").Handler(flow(handleGenerateMaintenanceSummary(opts.Flows)))
	r.Path("/maintenance/summary/defaults").Methods("GET").Handler(m(handleReadSummaryDefaults))

	r.NotFoundHandler = m(notFoundHandler)
	r.MethodNotAllowedHandler = m(methodNotAllowedHandler)

	if opts.Prefix == "" {
		return r
	}
	return http.StripPrefix(opts.Prefix, r)
}
