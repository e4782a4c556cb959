package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alumninet/alumninet-be/internal/models"
	"github.com/alumninet/alumninet-be/internal/store"
)

// ProfileServiceProvider defines the interface for profile services.
type ProfileServiceProvider interface {
	GetAllProfiles() ([]models.Profile, error)
	GetProfileByID(id string) (models.Profile, error)
	UpdateProfile(id, actorID string, patch map[string]any) (models.Profile, error)
}

// ProfileService provides business logic for the public profile directory.
type ProfileService struct {
	store    *store.Store
	eventSvc EventServiceProvider
}

// NewProfileService creates a new ProfileService.
func NewProfileService(st *store.Store, eventSvc EventServiceProvider) *ProfileService {
	return &ProfileService{store: st, eventSvc: eventSvc}
}

// GetAllProfiles retrieves the full profile collection in stored order.
func (s *ProfileService) GetAllProfiles() ([]models.Profile, error) {
	docs, err := s.store.List(store.CollectionProfiles)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, 0, len(docs))
	for _, doc := range docs {
		var p models.Profile
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// GetProfileByID retrieves a single profile.
func (s *ProfileService) GetProfileByID(id string) (models.Profile, error) {
	doc, err := s.store.Get(store.CollectionProfiles, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
		}
		return models.Profile{}, err
	}

	var p models.Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return models.Profile{}, fmt.Errorf("decode profile %s: %w", id, err)
	}
	return p, nil
}

// UpdateProfile applies a partial update to a profile. The actor must own
// the profile: actorID comes from the verified credential, and the update is
// rejected with ErrNotOwner when it does not match the stored userId.
func (s *ProfileService) UpdateProfile(id, actorID string, patch map[string]any) (models.Profile, error) {
	current, err := s.GetProfileByID(id)
	if err != nil {
		return models.Profile{}, err
	}

	if current.UserID != actorID {
		return models.Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotOwner)
	}

	// The identity fields are not patchable.
	delete(patch, "id")
	delete(patch, "userId")

	merged, err := s.store.Merge(store.CollectionProfiles, id, patch)
	if err != nil {
		return models.Profile{}, err
	}

	var updated models.Profile
	if err := json.Unmarshal(merged, &updated); err != nil {
		return models.Profile{}, fmt.Errorf("decode merged profile %s: %w", id, err)
	}

	if s.eventSvc != nil {
		msg := fmt.Sprintf("Profile '%s' was updated.", updated.Name)
		s.eventSvc.CreateEvent("profile.updated", "info", msg, &updated.ID)
	}
	return updated, nil
}
