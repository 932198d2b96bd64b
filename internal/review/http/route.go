package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, h *ReviewHandler, loginRequired gin.HandlerFunc) {
	r.POST("/venue/:id/add-review", loginRequired, h.Create)
}
