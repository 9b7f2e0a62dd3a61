package entity

import "time"

// Course belongs to a bootcamp; UserID is stamped from the acting
// principal at creation, never taken from the request body.
type Course struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                string    `json:"weeks"`
	Tuition              float64   `json:"tuition"`
	MinimumSkill         string    `json:"minimumSkill"`
	ScholarshipAvailable bool      `json:"scholarshipAvailable"`
	CreatedAt            time.Time `json:"createdAt"`
	BootcampID           string    `json:"bootcamp"`
	UserID               string    `json:"user"`
}
