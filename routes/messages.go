package routes

import (
	"github.com/RinKhimera/onlyscam-sub000/handlers/messages"
	"github.com/RinKhimera/onlyscam-sub000/middleware"

	"github.com/gin-gonic/gin"
)

func MessagesRoutes(r *gin.Engine) {
	messageRoutes := r.Group("/messages")
	messageRoutes.Use(middleware.JWTAuth())
	{
		messageRoutes.POST("/", messages.SendMessage)
		messageRoutes.GET("/", messages.GetUserMessages)
		messageRoutes.PATCH("/:id/read", messages.MarkAsRead)
	}
}
