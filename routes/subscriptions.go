package routes

import (
	subscriptionHandlers "github.com/RinKhimera/onlyscam-sub000/handlers/subscriptions"
	"github.com/RinKhimera/onlyscam-sub000/middleware"

	"github.com/gin-gonic/gin"
)

func SubscriptionsRoutes(r *gin.Engine) {
	followRoutes := r.Group("/follows")
	followRoutes.Use(middleware.JWTAuth())
	{
		followRoutes.POST("/:creatorId", subscriptionHandlers.FollowCreator)
		followRoutes.DELETE("/:creatorId", subscriptionHandlers.UnfollowCreator)
		followRoutes.GET("/:creatorId", subscriptionHandlers.GetRelationship)
	}

	r.GET("/subscriptions", middleware.JWTAuth(), subscriptionHandlers.GetUserSubscriptions)
}
