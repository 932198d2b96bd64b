package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/flash"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/venue-booking-backend/internal/wishlist"
)

type WishlistHandler struct {
	service wishlist.Service
}

func NewHandler(service wishlist.Service) *WishlistHandler {
	return &WishlistHandler{service: service}
}

// List shows the current user's saved venues.
func (h *WishlistHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	page := WishlistPage{Items: make([]ItemResponse, len(items))}
	for i, it := range items {
		page.Items[i] = NewItemResponse(it)
	}
	response.Render(c, http.StatusOK, "wishlist.tmpl", page)
}

// Toggle flips the venue's wishlist membership and redirects to "next".
func (h *WishlistHandler) Toggle(c *gin.Context) {
	var req request.VenueIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.NotFound(c)
		return
	}

	action, v, err := h.service.Toggle(c.Request.Context(), auth.GetUserID(c), req.VenueID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if action == wishlist.ActionRemoved {
		flash.Info(c, fmt.Sprintf("Removed %s from your wishlist.", v.Name))
	} else {
		flash.Success(c, fmt.Sprintf("Added %s to your wishlist.", v.Name))
	}

	c.Redirect(http.StatusFound, SafeNext(c.PostForm("next")))
}

// SafeNext returns next when it is a path on this site, otherwise the home page.
// Browsers drop tabs and newlines from URLs, so any control character is rejected.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") ||
		strings.ContainsFunc(next, unicode.IsControl) {
		return auth.HomePath
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return auth.HomePath
	}
	return next
}
