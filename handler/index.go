package handler

import (
	"encoding/json"
	"net/http"
)

type statusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Path    string `json:"path"`
}

// Handler is a minimal health endpoint for serverless deployments that probe
// the function root directly.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statusResponse{
		Status:  "ok",
		Service: "storefront-api",
		Path:    r.URL.Path,
	})
}
