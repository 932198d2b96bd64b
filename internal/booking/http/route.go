package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r gin.IRouter, h *Handler, loginRequired gin.HandlerFunc) {
	venues := r.Group("/venue", loginRequired)
	{
		venues.GET("/:id/book", h.BookPage)
		venues.POST("/:id/book", h.Create)
	}

	bookings := r.Group("/booking", loginRequired)
	{
		bookings.GET("/:id/payment", h.PaymentPage)
		bookings.POST("/:id/payment", h.Pay)
		bookings.GET("/:id/success", h.Success)
	}
}
