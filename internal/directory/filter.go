// Package directory implements client-side narrowing of the profile
// directory: a pure predicate over an already-fetched profile collection.
package directory

import (
	"strings"

	"github.com/alumninet/alumninet-be/internal/models"
)

// Spec describes the active filter criteria. Zero values deactivate a
// criterion: an empty query matches everything, a zero year or empty
// location is ignored, and an empty skill list requires nothing.
type Spec struct {
	Query          string
	GraduationYear int
	Location       string
	Skills         []string
}

// Filter returns the subset of profiles matching every active criterion,
// preserving the relative order of the input. The input slice is not
// modified.
func Filter(profiles []models.Profile, spec Spec) []models.Profile {
	matched := make([]models.Profile, 0, len(profiles))
	for _, p := range profiles {
		if Matches(p, spec) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Matches reports whether a single profile satisfies the spec.
func Matches(p models.Profile, spec Spec) bool {
	return matchesQuery(p, spec.Query) &&
		(spec.GraduationYear == 0 || p.GraduationYear == spec.GraduationYear) &&
		(spec.Location == "" || p.Location == spec.Location) &&
		hasAllSkills(p.Skills, spec.Skills)
}

// matchesQuery does a case-insensitive substring match over the profile's
// searchable text fields.
func matchesQuery(p models.Profile, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)

	for _, field := range []string{p.Name, p.Headline, p.Company, p.Location} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, skill := range p.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}

// hasAllSkills is an AND-subset test: every required skill must appear in
// the profile's skill list.
func hasAllSkills(have, required []string) bool {
	for _, want := range required {
		found := false
		for _, skill := range have {
			if skill == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
