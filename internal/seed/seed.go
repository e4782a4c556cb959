// Package seed provisions the database from a JSON fixture on first start.
// Accounts, profiles and job listings are created out-of-band here; the API
// itself has no registration or posting endpoints.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alumninet/alumninet-be/internal/models"
	"github.com/alumninet/alumninet-be/internal/services"
	"github.com/alumninet/alumninet-be/internal/store"
)

type seedUser struct {
	models.User
	// Provisioning password; hashed on import, never stored as-is.
	Password string `json:"password"`
}

type seedFile struct {
	Users    []seedUser       `json:"users"`
	Profiles []models.Profile `json:"profiles"`
	Jobs     []models.Job     `json:"jobs"`
}

// Load imports the seed file when the database holds no accounts yet. A
// missing file on an already-provisioned database is fine; a missing file on
// an empty database is an error, since login would be impossible.
func Load(userSvc *services.UserService, st *store.Store, path string) error {
	count, err := userSvc.CountUsers()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Debug().Int("users", count).Msg("Database already provisioned, skipping seed import")
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file %s: %w", path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file %s: %w", path, err)
	}

	for _, u := range seed.Users {
		if _, err := userSvc.CreateUser(u.ID, u.Name, u.Email, u.Role, u.Avatar, u.Password); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	for _, p := range seed.Profiles {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if err := st.Put(store.CollectionProfiles, p.ID, p); err != nil {
			return fmt.Errorf("seed profile %s: %w", p.ID, err)
		}
	}

	for _, j := range seed.Jobs {
		if j.ID == "" {
			j.ID = uuid.New().String()
		}
		if err := st.Put(store.CollectionJobs, j.ID, j); err != nil {
			return fmt.Errorf("seed job %s: %w", j.ID, err)
		}
	}

	log.Info().
		Int("users", len(seed.Users)).
		Int("profiles", len(seed.Profiles)).
		Int("jobs", len(seed.Jobs)).
		Msg("Seed import complete")
	return nil
}
