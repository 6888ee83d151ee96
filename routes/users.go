package routes

import (
	"github.com/RinKhimera/onlyscam-sub000/handlers/posts"
	subscriptionHandlers "github.com/RinKhimera/onlyscam-sub000/handlers/subscriptions"
	"github.com/RinKhimera/onlyscam-sub000/handlers/users"
	"github.com/RinKhimera/onlyscam-sub000/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	userRoutes := r.Group("/users")
	{
		userRoutes.GET("/me", middleware.JWTAuth(), users.GetMe)
		userRoutes.PATCH("/me", middleware.JWTAuth(), users.UpdateMe)
		userRoutes.POST("/me/picture", middleware.JWTAuth(), users.UploadProfilePicture)
		userRoutes.GET("/:id", users.GetUser)
		userRoutes.GET("/:id/posts", middleware.OptionalJWTAuth(), posts.GetCreatorPosts)
		userRoutes.GET("/:id/followers", subscriptionHandlers.GetFollowers)
		userRoutes.GET("/:id/following", subscriptionHandlers.GetFollowing)
	}
}
