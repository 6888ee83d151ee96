package routes

import (
	"github.com/RinKhimera/onlyscam-sub000/handlers/auth"
	"github.com/RinKhimera/onlyscam-sub000/handlers/ping"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	r.GET("/ping", ping.HandlePing)
	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
	r.GET("/confirm-email", auth.ConfirmEmail)
}
