package models

// Experience is a single position on a profile.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description"`
}

// Project is a showcased piece of work on a profile.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Profile is the public-facing record for a user, keyed by its own ID with a
// back-reference to the owning account. Only the owner may update it.
type Profile struct {
	ID             string       `json:"id"`
	UserID         string       `json:"userId"`
	Name           string       `json:"name"`
	Avatar         string       `json:"avatar,omitempty"`
	Headline       string       `json:"headline"`
	Bio            string       `json:"bio"`
	GraduationYear int          `json:"graduationYear"`
	Company        string       `json:"company,omitempty"`
	Location       string       `json:"location"`
	Skills         []string     `json:"skills"`
	Experience     []Experience `json:"experience,omitempty"`
	Projects       []Project    `json:"projects,omitempty"`
}
