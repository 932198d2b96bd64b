package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/form"
	"github.com/nekogravitycat/venue-booking-backend/internal/review"
)

// CreateReviewRequest is the payload of the review form.
type CreateReviewRequest struct {
	Rating  string `form:"rating" json:"rating" binding:"required"`
	Comment string `form:"comment" json:"comment" binding:"required"`
}

// ParsedRating returns the numeric rating, or 0 when it is not a number.
func (r *CreateReviewRequest) ParsedRating() int {
	rating, err := strconv.Atoi(strings.TrimSpace(r.Rating))
	if err != nil {
		return 0
	}
	return rating
}

// NewReviewForm builds the review form shown on the venue page.
func NewReviewForm() *form.Form {
	choices := make([]form.Choice, 0, review.MaxRating)
	for i := review.MinRating; i <= review.MaxRating; i++ {
		s := strconv.Itoa(i)
		choices = append(choices, form.Choice{Value: s, Label: s})
	}

	return form.New(
		&form.Field{Name: "rating", Label: "Rating", Widget: form.RadioSelect, Choices: choices},
		&form.Field{
			Name: "comment", Label: "Comment", Widget: form.Textarea,
			Attrs: map[string]string{"rows": "3", "placeholder": "Share your experience"},
		},
	)
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func NewReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Username:  r.Username,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func NewReviewListResponse(reviews []*review.Review) []ReviewResponse {
	items := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		items[i] = NewReviewResponse(r)
	}
	return items
}
