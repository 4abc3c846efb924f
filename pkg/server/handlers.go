package server

import (
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/pjv/pkg/buildinfo"
	"github.com/matzehuels/pjv/pkg/errors"
	"github.com/matzehuels/pjv/pkg/report"
	"github.com/matzehuels/pjv/pkg/runner"
	"github.com/matzehuels/pjv/pkg/validator"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "metrics are disabled")
		return
	}
	s.metrics.ServeHTTP(w, r)
}

func (s *Server) handleSpecs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, report.Specs())
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// handleValidate validates the request body. Query parameters:
//   - spec: schema name, default npm. Unknown names yield a critical result.
//   - warnings, recommendations: booleans, default true.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	showWarnings, err := boolParam(q, "warnings", true)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	showRecs, err := boolParam(q, "recommendations", true)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeErr(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "read body: %v", err))
		return
	}

	rn := &runner.Runner{
		Spec: validator.SpecName(q.Get("spec")),
		Options: validator.Options{
			HideWarnings:        !showWarnings,
			HideRecommendations: !showRecs,
		},
		Cache:  s.cache,
		Keyer:  s.keyer,
		TTL:    s.ttl,
		Logger: s.logger.With("request_id", RequestID(r.Context())),
	}
	results, err := rn.Run(r.Context(), []runner.Job{{Path: "body", Data: body}})
	if err != nil {
		writeErr(w, http.StatusServiceUnavailable, err)
		return
	}

	if results[0].Cached {
		w.Header().Set("X-Cache", "hit")
	}
	writeJSON(w, http.StatusOK, results[0].Result)
}

func boolParam(q url.Values, name string, def bool) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, v)
	}
	return b, nil
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeErr reports err under its code. Errors without one are internal.
func writeErr(w http.ResponseWriter, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeError(w, status, string(code), errors.UserMessage(err))
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = msg
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
