package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/gridsep/pkg/buildinfo"
	"github.com/matzehuels/gridsep/pkg/errors"
	"github.com/matzehuels/gridsep/pkg/io"
	"github.com/matzehuels/gridsep/pkg/pipeline"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type healthBody struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleSeparate(w http.ResponseWriter, r *http.Request) {
	t, opts, ok := s.decode(w, r)
	if !ok {
		return
	}
	res, err := s.runner.Separate(r.Context(), t, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := io.WriteResult(res.Output, w); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	t, opts, ok := s.decode(w, r)
	if !ok {
		return
	}
	res, err := s.runner.Orders(r.Context(), t, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	t, opts, ok := s.decode(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	data, err := pipeline.RenderGraph(t, opts, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if format == pipeline.FormatDOT {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	} else {
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decode reads the tiling body and the query options. On failure it writes
// the error response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*tiling.Tiling, pipeline.Options, bool) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return nil, opts, false
	}
	t, err := io.ReadTiling(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeError(w, r, err)
		return nil, opts, false
	}
	return t, opts, true
}

func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.search
	opts.Logger = nil
	q := r.URL.Query()
	var err error
	if opts.Transitive, err = boolParam(q.Get("transitive"), opts.Transitive, "transitive"); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh"), false, "refresh"); err != nil {
		return opts, err
	}
	all, err := boolParam(q.Get("all"), !opts.BestOnly, "all")
	if err != nil {
		return opts, err
	}
	opts.BestOnly = !all
	if dim := q.Get("dim"); dim != "" {
		opts.Dimension = dim
	}
	return opts, opts.Validate()
}

func boolParam(v string, def bool, name string) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", name, v)
	}
	return b, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
			Code:    errors.ErrCodeInvalidInput,
			Message: "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
		})
	case stderrors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorBody{Code: errors.ErrCodeTimeout, Message: "request timed out"})
	case errors.HTTPStatus(err) != http.StatusInternalServerError:
		writeJSON(w, errors.HTTPStatus(err), errorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)})
	default:
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: errors.ErrCodeInternal, Message: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
