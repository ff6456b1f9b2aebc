// Package sizing exposes the sizing resolver over HTTP.
package sizing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kilianp07/evsizer/core/events"
	"github.com/kilianp07/evsizer/core/model"
	coresizing "github.com/kilianp07/evsizer/core/sizing"
	"github.com/kilianp07/evsizer/infra/logger"
	"github.com/kilianp07/evsizer/internal/sizer"
	"github.com/kilianp07/evsizer/pkg/export"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

// Sizer resolves requests on behalf of a transport.
type Sizer interface {
	Size(id, transport string, req model.StationRequest) (model.SizingResult, error)
	Reject(id, transport, reason string, err error)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewSizingHandler returns the POST /api/sizing handler. The report format is
// chosen with ?format=json|csv|xlsx|pdf.
func NewSizingHandler(s Sizer) http.Handler {
	log := logger.New("api")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = sizer.NewRequestID()
		}
		w.Header().Set("X-Request-ID", id)

		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		var req model.StationRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
		if err := dec.Decode(&req); err != nil {
			s.Reject(id, events.TransportHTTP, sizer.ReasonDecode, err)
			writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("decode request: %v", err)})
			return
		}
		res, err := s.Size(id, events.TransportHTTP, req)
		if err != nil {
			if errors.Is(err, model.ErrInvalidRequest) {
				writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
				return
			}
			log.Errorf("request %s: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
			return
		}

		var buf bytes.Buffer
		if err := export.Write(&buf, format, res); err != nil {
			log.Errorf("request %s: render %s: %v", id, format, err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "render report"})
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		if format != export.FormatJSON {
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "sizing-"+id+"."+string(format)))
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Warnf("request %s: write response: %v", id, err)
		}
	})
}

// NewCatalogHandler returns the GET /api/catalog handler.
func NewCatalogHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, coresizing.FullCatalog())
	})
}

// NewHealthHandler reports whether the reference table is loaded.
func NewHealthHandler(ready func() bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ready != nil && !ready() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Routes mounts the API handlers on a new ServeMux.
func Routes(s Sizer, ready func() bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/sizing", NewSizingHandler(s))
	mux.Handle("/api/catalog", NewCatalogHandler())
	mux.Handle("/healthz", NewHealthHandler(ready))
	return mux
}
