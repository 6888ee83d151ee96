package routes

import (
	"github.com/RinKhimera/onlyscam-sub000/handlers/posts"
	"github.com/RinKhimera/onlyscam-sub000/handlers/posts/comment"
	"github.com/RinKhimera/onlyscam-sub000/handlers/posts/likes"
	"github.com/RinKhimera/onlyscam-sub000/handlers/posts/report"
	"github.com/RinKhimera/onlyscam-sub000/middleware"

	"github.com/gin-gonic/gin"
)

func PostsRoutes(r *gin.Engine) {
	postRoutes := r.Group("/posts")
	{
		postRoutes.POST("/", middleware.JWTAuth(), posts.CreatePost)
		postRoutes.GET("/:id", middleware.OptionalJWTAuth(), posts.GetPost)
		postRoutes.PATCH("/:id", middleware.JWTAuth(), posts.UpdatePost)
		postRoutes.DELETE("/:id", middleware.JWTAuth(), posts.DeletePost)
		postRoutes.POST("/:id/like", middleware.JWTAuth(), likes.ToggleLike)
		postRoutes.POST("/:id/comments", middleware.JWTAuth(), comment.CreateComment)
		postRoutes.GET("/:id/comments", comment.GetCommentsByPostID)
		postRoutes.POST("/:id/report", middleware.JWTAuth(), report.ReportPost)
	}

	reportRoutes := r.Group("/reports")
	reportRoutes.Use(middleware.AdminAuth())
	{
		reportRoutes.GET("/", report.GetReports)
		reportRoutes.PATCH("/:id", report.UpdateReportStatus)
	}
}
