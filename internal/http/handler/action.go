package handler

import (
	"encoding/json"
	"net/http"

	"plan2read/internal/api"
)

const maxBodyBytes = 1 << 20

// ActionHandler exposes the action dispatcher over HTTP. Every envelope,
// success or error, goes out with 200; only an unreadable body gets 400.
type ActionHandler struct {
	Dispatcher *api.Dispatcher
}

// Post accepts {action, ...fields}. The body is decoded as JSON whatever
// the Content-Type, since browser clients send text/plain to avoid a
// CORS preflight.
func (h *ActionHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req api.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, api.Failure("bad json"))
		return
	}
	writeEnvelope(w, http.StatusOK, h.Dispatcher.Handle(r.Context(), req))
}

// Get serves the query-string variant, read actions only.
func (h *ActionHandler) Get(w http.ResponseWriter, r *http.Request) {
	req := api.RequestFromValues(r.URL.Query())
	if api.IsWrite(req.Action) {
		writeEnvelope(w, http.StatusOK, api.Failure(req.Action+" requires POST"))
		return
	}
	writeEnvelope(w, http.StatusOK, h.Dispatcher.Handle(r.Context(), req))
}

func writeEnvelope(w http.ResponseWriter, status int, resp api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
