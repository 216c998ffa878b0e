package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	FeedbackRatingMin = 1
	FeedbackRatingMax = 10
)

type Feedback struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	Rating    int       `json:"rating"`
	Comments  string    `json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewFeedback(contactID string, rating int, comments string) *Feedback {
	return &Feedback{
		ID:        uuid.New().String(),
		ContactID: contactID,
		Rating:    rating,
		Comments:  comments,
		CreatedAt: time.Now(),
	}
}
