// internal/server/router.go
//
// JSON API routes.
//
// Routes
// ------
//
//	POST /v1/validate  ValidationRequest → Report
//	GET  /healthz      liveness probe
//	GET  /metrics      Prometheus exposition
//
// Status mapping for /v1/validate
// -------------------------------
//
//	200  report produced (valid or not, structural failures included)
//	400  body is not a ValidationRequest
//	413  body exceeds MaxBodyBytes
//	422  the schema version has no requirements
//	503  the requirements store is unreachable
//	499  the client went away before the report was ready
//	500  anything else
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/reqvalidator/internal/middleware"
	"github.com/yanizio/reqvalidator/internal/record"
	"github.com/yanizio/reqvalidator/internal/requirement"
	"github.com/yanizio/reqvalidator/internal/service"
)

// MaxBodyBytes bounds a single validation request.
const MaxBodyBytes = 16 << 20

// StatusClientClosedRequest is nginx's code for a client that hung up.
const StatusClientClosedRequest = 499

// Validator is the slice of *service.Service the router needs.
type Validator interface {
	Validate(ctx context.Context, req *record.ValidationRequest) (*service.Report, error)
}

// Router builds the chi mux.  log may be nil.
func Router(v Validator, log *zap.SugaredLogger) http.Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	h := &handler{v: v, log: log}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.APIHeaders)

	r.Post("/v1/validate", h.validate)
	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

type handler struct {
	v   Validator
	log *zap.SugaredLogger
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (h *handler) validate(w http.ResponseWriter, r *http.Request) {
	var req record.ValidationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.fail(w, r, http.StatusRequestEntityTooLarge, err)
			return
		}
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}

	rep, err := h.v.Validate(r.Context(), &req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rep)
	case errors.Is(err, requirement.ErrNoData):
		h.fail(w, r, http.StatusUnprocessableEntity, err)
	case errors.Is(err, context.Canceled):
		// Client hung up; not a server fault.
		h.log.Debugw("validate request abandoned by client",
			"request_id", chimw.GetReqID(r.Context()))
		w.WriteHeader(StatusClientClosedRequest)
	case errors.Is(err, requirement.ErrConnection):
		h.fail(w, r, http.StatusServiceUnavailable, err)
	default:
		h.fail(w, r, http.StatusInternalServerError, err)
	}
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := chimw.GetReqID(r.Context())
	h.log.Infow("validate request rejected", "request_id", id, "status", status, "err", err)
	writeJSON(w, status, errorBody{Error: err.Error(), RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
