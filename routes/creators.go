package routes

import (
	"github.com/RinKhimera/onlyscam-sub000/handlers/creators"
	"github.com/RinKhimera/onlyscam-sub000/middleware"

	"github.com/gin-gonic/gin"
)

func CreatorsRoutes(r *gin.Engine) {
	creatorRoutes := r.Group("/creators")
	{
		creatorRoutes.POST("/apply", middleware.JWTAuth(), creators.Apply)
		creatorRoutes.GET("/application", middleware.JWTAuth(), creators.GetOwnApplication)
		creatorRoutes.GET("/applications", middleware.AdminAuth(), creators.ListApplications)
		creatorRoutes.PATCH("/applications/:id", middleware.AdminAuth(), creators.ReviewApplication)
	}
}
