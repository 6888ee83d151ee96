package comment

import (
	"net/http"

	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"

	"github.com/gin-gonic/gin"
)

// @Summary Comment a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param comment body models.CommentCreate true "Comment content"
// @Security BearerAuth
// @Success 201 {object} models.Comment
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Comments disabled"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Router /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID := c.Param("id")

	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// L'auteur du post peut couper les commentaires sur son profil
	var author models.User
	if err := db.DB.First(&author, "id = ?", post.AuthorID).Error; err == nil && !author.CommentsEnable {
		c.JSON(http.StatusForbidden, gin.H{"error": "The author has disabled comments"})
		return
	}

	var input models.CommentCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	comment := models.Comment{
		PostID:  postID,
		UserID:  userID.(string),
		Content: input.Content,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// @Summary List a post's comments
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} models.Comment
// @Router /posts/{id}/comments [get]
func GetCommentsByPostID(c *gin.Context) {
	var comments []models.Comment
	if err := db.DB.Where("post_id = ?", c.Param("id")).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}
