package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

type submissionRequest struct {
	RequesterID string `json:"requester_id"`
	Address     string `json:"address"`
}

// Handler exposes the ingress surface the front-end adapter posts to.
// Distribution runs in the background; the reply travels over the notifier,
// not this HTTP response.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if !s.Ready() {
			http.Error(w, "preflight not passed", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})
	mux.HandleFunc("/v1/distributions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req submissionRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		req.RequesterID = strings.TrimSpace(req.RequesterID)
		if req.RequesterID == "" || strings.TrimSpace(req.Address) == "" {
			http.Error(w, "requester_id and address are required", http.StatusBadRequest)
			return
		}

		// The request context dies with this response; the distribution
		// must not.
		go s.HandleSubmission(context.WithoutCancel(r.Context()), req.RequesterID, req.Address)
		w.WriteHeader(http.StatusAccepted)
	})
	return mux
}
