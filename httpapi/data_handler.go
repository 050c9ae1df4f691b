package httpapi

import (
	"net/http"

	"github.com/korylprince/proactiveshield-server/api"
	"github.com/korylprince/proactiveshield-server/query"
)

//filtered returns records filtered by the request's query parameters. The api_key parameter is not a filter.
func filtered[T query.Fielder](r *http.Request, records []T) *handlerResponse {
	params, err := query.ParseValues(r.URL.Query(), apiKeyParam)
	if resp := checkAPIError(err); resp != nil {
		return resp
	}

	records, err = query.Filter(records, params)
	if resp := checkAPIError(err); resp != nil {
		return resp
	}

	return &handlerResponse{Code: http.StatusOK, Body: records}
}

//GET /equipment/health
func handleReadEquipment(s *api.Store) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		return filtered(r, s.Equipment())
	}
}

//GET /alerts
func handleReadAlerts(s *api.Store) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		return filtered(r, s.Alerts())
	}
}

//GET /predictions/failure
func handleReadFailurePredictions(s *api.Store) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		return filtered(r, s.FailurePredictions())
	}
}

//GET /maintenance-logs
func handleReadMaintenanceLogs(s *api.Store) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		return filtered(r, s.MaintenanceLogs())
	}
}
