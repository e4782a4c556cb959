package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alumninet/alumninet-be/internal/models"
	"github.com/alumninet/alumninet-be/internal/store"
)

// JobServiceProvider defines the interface for job listing services.
type JobServiceProvider interface {
	GetAllJobs() ([]models.Job, error)
	GetJobByID(id string) (models.Job, error)
	PruneExpired(retention time.Duration) (int, error)
}

// JobService provides read access to job listings plus the retention sweep.
type JobService struct {
	store    *store.Store
	eventSvc EventServiceProvider
}

// NewJobService creates a new JobService.
func NewJobService(st *store.Store, eventSvc EventServiceProvider) *JobService {
	return &JobService{store: st, eventSvc: eventSvc}
}

// GetAllJobs retrieves the full job collection in stored order.
func (s *JobService) GetAllJobs() ([]models.Job, error) {
	docs, err := s.store.List(store.CollectionJobs)
	if err != nil {
		return nil, err
	}

	jobs := make([]models.Job, 0, len(docs))
	for _, doc := range docs {
		var j models.Job
		if err := json.Unmarshal(doc, &j); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// GetJobByID retrieves a single job listing.
func (s *JobService) GetJobByID(id string) (models.Job, error) {
	doc, err := s.store.Get(store.CollectionJobs, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Job{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return models.Job{}, err
	}

	var j models.Job
	if err := json.Unmarshal(doc, &j); err != nil {
		return models.Job{}, fmt.Errorf("decode job %s: %w", id, err)
	}
	return j, nil
}

// PruneExpired deletes listings whose posted date is older than the
// retention window and reports how many were removed. Listings with an
// unparseable date are left alone.
func (s *JobService) PruneExpired(retention time.Duration) (int, error) {
	jobs, err := s.GetAllJobs()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-retention)
	pruned := 0
	for _, job := range jobs {
		posted, err := parsePostedDate(job.PostedDate)
		if err != nil {
			log.Warn().Str("job_id", job.ID).Str("posted_date", job.PostedDate).Msg("Skipping job with unparseable posted date")
			continue
		}
		if posted.Before(cutoff) {
			if err := s.store.Delete(store.CollectionJobs, job.ID); err != nil {
				return pruned, err
			}
			pruned++
		}
	}

	if pruned > 0 && s.eventSvc != nil {
		msg := fmt.Sprintf("Removed %d expired job listing(s).", pruned)
		s.eventSvc.CreateEvent("jobs.pruned", "info", msg, nil)
	}
	return pruned, nil
}

func parsePostedDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
