package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, h *WishlistHandler, loginRequired gin.HandlerFunc) {
	g := r.Group("/wishlist", loginRequired)
	{
		g.GET("", h.List)
		g.POST("/toggle/:venue_id", h.Toggle)
	}
}
