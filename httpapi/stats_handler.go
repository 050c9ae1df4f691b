package httpapi

import (
	"net/http"

	"github.com/korylprince/proactiveshield-server/api"
)

//GET /stats
func handleReadStats(s *api.Store) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		return &handlerResponse{Code: http.StatusOK, Body: s.Stats()}
	}
}
