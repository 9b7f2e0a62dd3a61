package entity

import "time"

// Review rates a bootcamp 1-10. One review per user per bootcamp.
type Review struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
	BootcampID string    `json:"bootcamp"`
	UserID     string    `json:"user"`
}
