package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/penpath/pkg/buildinfo"
	"github.com/matzehuels/penpath/pkg/cache"
	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/hpgl"
	"github.com/matzehuels/penpath/pkg/jobs"
	"github.com/matzehuels/penpath/pkg/pipeline"
)

// Response headers set by the optimize endpoint.
const (
	HeaderJobID = "X-Job-ID"
	HeaderCache = "X-Cache"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Fragments []string `json:"fragments,omitempty"`
}

func errorResponse(err error) ErrorResponse {
	resp := ErrorResponse{
		Code:    string(perrors.GetCode(err)),
		Message: perrors.UserMessage(err),
	}
	if resp.Code == "" {
		resp.Code = string(perrors.ErrCodeInternal)
	}
	var pe *hpgl.ParseError
	if errors.As(err, &pe) {
		resp.Fragments = pe.Fragments
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, perrors.HTTPStatus(err), errorResponse(err))
}

// optionsFromQuery reads pipeline options from query parameters.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	var err error

	if v := q.Get("collapse"); v != "" {
		if opts.Collapse, err = strconv.ParseBool(v); err != nil {
			return opts, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "collapse")
		}
	}
	if v := q.Get("optimize"); v != "" {
		optimize, err := strconv.ParseBool(v)
		if err != nil {
			return opts, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "optimize")
		}
		opts.SkipOptimize = !optimize
	}
	if v := q.Get("format"); v != "" {
		if err := pipeline.ValidateFormat(v); err != nil {
			return opts, err
		}
		opts.Formats = []string{v}
	}
	return opts, nil
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		writeError(w, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	job := jobs.New(cache.Hash(body), jobs.DefaultTTL)
	job.Formats = opts.Formats
	w.Header().Set(HeaderJobID, job.ID)
	if err := s.jobs.Set(r.Context(), job); err != nil {
		s.logger.Warn("store job", "id", job.ID, "err", err)
	}

	res, err := s.runner.Execute(r.Context(), body, opts)
	if err != nil {
		job.Fail(err)
		s.saveJob(r, job)
		s.logger.Info("optimize failed", "job", job.ID, "code", perrors.GetCode(err))
		writeError(w, err)
		return
	}
	job.Finish(res.Text, &res.Stats)
	s.saveJob(r, job)

	format := pipeline.FormatHPGL
	if len(opts.Formats) > 0 {
		format = opts.Formats[0]
	}
	if res.CacheInfo.PlotHit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) saveJob(r *http.Request, job *jobs.Job) {
	if err := s.jobs.Set(r.Context(), job); err != nil {
		s.logger.Warn("store job", "id", job.ID, "err", err)
	}
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, perrors.New(perrors.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	list, err := s.jobs.List(r.Context(), limit)
	if err != nil {
		writeError(w, perrors.Wrap(perrors.ErrCodeInternal, err, "list jobs"))
		return
	}
	if list == nil {
		list = []*jobs.Job{}
	}
	writeJSON(w, http.StatusOK, list)
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}
