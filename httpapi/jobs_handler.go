package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mujahedk/duraq"
	"github.com/mujahedk/duraq/job"
)

type createJobRequest struct {
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	MaxAttempts int             `json:"max_attempts"`
}

type jobListResponse struct {
	Items []*job.Job `json:"items"`
	Count int        `json:"count"`
}

const defaultMaxAttempts = 5

// handleCreateJob enqueues a new job. POST /v1/jobs
func handleCreateJob(enqueuer duraq.Enqueuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createJobRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		maxAttempts := req.MaxAttempts
		if maxAttempts == 0 {
			maxAttempts = defaultMaxAttempts
		}

		jb, err := enqueuer.Enqueue(r.Context(), req.Type, req.Payload, maxAttempts)
		if err != nil {
			if ve, ok := err.(*duraq.ValidationError); ok {
				writeError(w, http.StatusBadRequest, ve.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to enqueue job")
			return
		}

		writeJSON(w, http.StatusCreated, jb)
	}
}

// handleListJobs lists jobs with optional filters. GET /v1/jobs
func handleListJobs(observer duraq.Observer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := duraq.ListOptions{
			Type: q.Get("type"),
		}
		if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
			opts.Limit = limit
		}
		if statusStr := q.Get("status"); statusStr != "" {
			status, err := job.ParseStatus(statusStr)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid status filter")
				return
			}
			opts.Status = status
		}

		items, err := observer.List(r.Context(), opts)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list jobs")
			return
		}

		writeJSON(w, http.StatusOK, jobListResponse{Items: items, Count: len(items)})
	}
}

// handleGetJob returns a single job by id. GET /v1/jobs/{id}
func handleGetJob(observer duraq.Observer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "id")
		if !isValidUUID(idStr) {
			writeError(w, http.StatusBadRequest, "invalid job id format")
			return
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid job id format")
			return
		}

		jb, err := observer.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to get job")
			return
		}
		if jb == nil {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}

		writeJSON(w, http.StatusOK, jb)
	}
}
