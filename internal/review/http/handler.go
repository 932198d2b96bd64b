package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/flash"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/venue-booking-backend/internal/review"
)

const invalidReviewMessage = "Could not add review. Please check the form and try again."

type ReviewHandler struct {
	service review.Service
}

func NewHandler(service review.Service) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Create adds a review to a venue and redirects back to the venue page.
// Invalid input is reported as a flash message, an unknown venue as 404.
func (h *ReviewHandler) Create(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.NotFound(c)
		return
	}

	// Missing fields fall through to the service, which reports them after
	// checking that the venue exists.
	var req CreateReviewRequest
	_ = c.ShouldBind(&req)

	_, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), uri.ID, req.ParsedRating(), req.Comment)
	switch {
	case err == nil:
		flash.Success(c, "Review added successfully.")
	case errors.Is(err, review.ErrInvalidRating), errors.Is(err, review.ErrCommentRequired):
		flash.Error(c, invalidReviewMessage)
	default:
		response.Error(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/venue/"+uri.ID)
}
