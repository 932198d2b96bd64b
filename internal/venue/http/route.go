package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, h *VenueHandler, loginRequired gin.HandlerFunc) {
	g := r.Group("", loginRequired)
	{
		g.GET("/home", h.Home)
		g.GET("/catalog", h.Catalog)
		g.GET("/venue/:id", h.Detail)
	}
}
