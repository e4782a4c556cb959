package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/alumninet/alumninet-be/internal/services"
)

// JobHandler handles HTTP requests for job listings.
type JobHandler struct {
	service services.JobServiceProvider
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobServiceProvider) *JobHandler {
	return &JobHandler{service: service}
}

// GetAll returns every job listing.
func (h *JobHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.GetAllJobs()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list jobs")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}
	respondJSON(w, http.StatusOK, jobs)
}

// Get returns a single job listing by ID.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.service.GetJobByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Job not found")
			return
		}
		log.Error().Err(err).Str("job_id", id).Msg("Failed to get job")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve job")
		return
	}
	respondJSON(w, http.StatusOK, job)
}
