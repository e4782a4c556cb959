package models

// Job is a read-only listing posted by a member of the network.
type Job struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         string   `json:"type"` // e.g. "Full-time", "Internship"
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	PostedBy     string   `json:"postedBy"`
	PostedDate   string   `json:"postedDate"`
}
