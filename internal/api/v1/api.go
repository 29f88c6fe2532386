// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/fetch"
	"github.com/vmunix/catchup/internal/listing"
	"github.com/vmunix/catchup/internal/tasks"
	"github.com/vmunix/catchup/internal/trailers"
)

const defaultHistoryLimit = 50

// Config holds API server configuration.
type Config struct {
	Version string
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
	log  *slog.Logger
}

// New creates a new v1 API server.
func New(deps ServerDeps, cfg Config, log *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("api v1: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{deps: deps, cfg: cfg, log: log.With("component", "api")}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Channel
	mux.HandleFunc("GET /api/v1/channel", s.getChannel)
	mux.HandleFunc("GET /api/v1/channel/items", s.listItems)
	mux.HandleFunc("GET /api/v1/channel/images/{type}", s.getImage)
	mux.HandleFunc("GET /api/v1/channel/media", s.getMedia)
	mux.HandleFunc("GET /api/v1/channel/all", s.listAllMedia)

	// Tasks
	mux.HandleFunc("GET /api/v1/tasks", s.listTasks)
	mux.HandleFunc("GET /api/v1/tasks/{key}", s.getTask)
	mux.HandleFunc("POST /api/v1/tasks/{key}/run", s.runTask)
	mux.HandleFunc("POST /api/v1/tasks/{key}/cancel", s.cancelTask)

	// Trailers
	mux.HandleFunc("GET /api/v1/trailers/history", s.requireHistory(s.listTrailerHistory))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeChannelError maps channel, listing and fetch errors to API errors.
// Anything unrecognized came from the remote site.
func (s *Server) writeChannelError(w http.ResponseWriter, r *http.Request, err error) {
	var status *fetch.HTTPStatusError
	switch {
	case errors.Is(err, channel.ErrInvalidNavigationID):
		writeError(w, http.StatusBadRequest, "INVALID_NAVIGATION_ID", err.Error())
	case errors.Is(err, channel.ErrUnsupportedImageType):
		writeError(w, http.StatusBadRequest, "UNSUPPORTED_IMAGE_TYPE", err.Error())
	case errors.Is(err, channel.ErrNotImplemented):
		writeError(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", err.Error())
	case errors.Is(err, listing.ErrPageStructureChanged):
		s.log.Error("listing page structure changed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "PAGE_STRUCTURE_CHANGED", err.Error())
	case errors.As(err, &status):
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	default:
		s.log.Warn("channel request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
}

func writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tasks.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, tasks.ErrAlreadyRunning):
		writeError(w, http.StatusConflict, "ALREADY_RUNNING", err.Error())
	case errors.Is(err, tasks.ErrDisabled):
		writeError(w, http.StatusConflict, "DISABLED", err.Error())
	case errors.Is(err, tasks.ErrNotRunning):
		writeError(w, http.StatusConflict, "NOT_RUNNING", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// queryInt extracts an optional non-negative integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, val)
	}
	return i, nil
}

func (s *Server) getChannel(w http.ResponseWriter, r *http.Request) {
	ch := s.deps.Channel
	writeJSON(w, http.StatusOK, channelResponse{
		Name:            ch.Name(),
		HomePageURL:     ch.HomePageURL(),
		DataVersion:     ch.DataVersion(),
		Features:        ch.Features(),
		SupportedImages: ch.SupportedImages(),
	})
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	start, err := queryInt(r, "start", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	page := channel.Page{StartIndex: start, Limit: limit}
	res, err := s.deps.Channel.ListChildren(r.Context(), r.URL.Query().Get("folder_id"), page)
	if err != nil {
		s.writeChannelError(w, r, err)
		return
	}

	if limit == 0 || limit > s.deps.Channel.Features().MaxPageSize {
		limit = s.deps.Channel.Features().MaxPageSize
	}
	writeJSON(w, http.StatusOK, itemsResponse{
		Items:            res.Items,
		TotalRecordCount: res.TotalRecordCount,
		Start:            start,
		Limit:            limit,
		DataVersion:      res.DataVersion,
		CacheTTLSeconds:  int64(res.CacheTTL.Seconds()),
	})
}

func (s *Server) getImage(w http.ResponseWriter, r *http.Request) {
	img, err := s.deps.Channel.Image(channel.ParseImageType(r.PathValue("type")))
	if err != nil {
		s.writeChannelError(w, r, err)
		return
	}
	defer func() { _ = img.Body.Close() }()

	w.Header().Set("Content-Type", "image/"+img.Format)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, img.Body)
}

func (s *Server) getMedia(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "id is required")
		return
	}
	src, err := s.deps.Channel.MediaInfo(r.Context(), id)
	if err != nil {
		s.writeChannelError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, src)
}

func (s *Server) listAllMedia(w http.ResponseWriter, r *http.Request) {
	_, err := s.deps.Channel.AllMedia(r.Context())
	s.writeChannelError(w, r, err)
}

func toTaskResponse(st tasks.State, next map[string]time.Time) taskResponse {
	return taskResponse{State: st, NextRun: next[st.Key]}
}

func (s *Server) nextRuns() map[string]time.Time {
	if s.deps.Schedule == nil {
		return nil
	}
	return s.deps.Schedule.Next()
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	next := s.nextRuns()
	states := s.deps.Tasks.States()
	resp := listTasksResponse{Tasks: make([]taskResponse, 0, len(states))}
	for _, st := range states {
		resp.Tasks = append(resp.Tasks, toTaskResponse(st, next))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	st, err := s.deps.Tasks.State(r.PathValue("key"))
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(st, s.nextRuns()))
}

func (s *Server) runTask(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	runID, err := s.deps.Tasks.Run(r.Context(), key)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, runTaskResponse{Key: key, RunID: runID})
}

func (s *Server) cancelTask(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Tasks.Cancel(r.PathValue("key")); err != nil {
		writeTaskError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTrailerHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultHistoryLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.deps.History.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return
	}
	if entries == nil {
		entries = []trailers.Entry{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Entries: entries, Limit: limit})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	states := s.deps.Tasks.States()
	running := 0
	for _, st := range states {
		if st.Running {
			running++
		}
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:       "ok",
		Version:      s.cfg.Version,
		Channel:      s.deps.Channel.Name(),
		DataVersion:  s.deps.Channel.DataVersion(),
		Tasks:        len(states),
		RunningTasks: running,
	})
}
