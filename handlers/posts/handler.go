package posts

import (
	"errors"
	"net/http"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/subscriptions"
	"github.com/RinKhimera/onlyscam-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// canViewPost décide si un utilisateur a accès à un post réservé.
// L'accès se recalcule toujours depuis la date de fin de l'abonnement, le
// champ status stocké ne fait pas foi.
func canViewPost(post *models.Post, viewerID string, viewerRole string) bool {
	if post.IsPublic {
		return true
	}
	if viewerID == "" {
		return false
	}
	if viewerID == post.AuthorID || viewerRole == string(models.AdminRole) {
		return true
	}

	sub, err := subscriptions.GetByPair(post.AuthorID, viewerID, models.ServiceTypeFollow)
	if err != nil || sub == nil {
		return false
	}
	return sub.IsActive(time.Now())
}

// @Summary Create a new post
// @Description Create a post with optional media. Subscriber-only posts are reserved to content creators.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param content formData string true "Post content"
// @Param isPublic formData boolean false "Public post"
// @Param media formData file false "Post media"
// @Security BearerAuth
// @Success 201 {object} models.Post
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Creator role required"
// @Router /posts [post]
func CreatePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	content := c.Request.FormValue("content")
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	isPublic := c.Request.FormValue("isPublic") != "false"

	role, _ := c.Get("role")
	if !isPublic && role != string(models.CreatorRole) && role != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only content creators can publish subscriber-only posts"})
		return
	}

	post := models.Post{
		AuthorID: userID.(string),
		Content:  content,
		IsPublic: isPublic,
		Enable:   true,
	}

	if file, err := c.FormFile("media"); err == nil && file != nil {
		mediaURL, err := utils.UploadMedia(file, "post_media", "post")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading media: " + err.Error()})
			return
		}
		post.MediaURL = mediaURL
	}

	if err := db.DB.Create(&post).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création du post dans CreatePost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		return
	}

	utils.LogSuccessWithUser(userID, "Post créé avec succès dans CreatePost")
	c.JSON(http.StatusCreated, post)
}

// @Summary Get a creator's posts
// @Description List a creator's posts. Subscriber-only posts are filtered out unless the viewer has an unexpired subscription.
// @Tags posts
// @Produce json
// @Param id path string true "Creator ID"
// @Success 200 {array} models.Post
// @Router /users/{id}/posts [get]
func GetCreatorPosts(c *gin.Context) {
	authorID := c.Param("id")

	viewerID := ""
	if userID, exists := c.Get("user_id"); exists {
		viewerID = userID.(string)
	}
	viewerRole := ""
	if role, exists := c.Get("role"); exists {
		viewerRole, _ = role.(string)
	}

	var posts []models.Post
	if err := db.DB.Where("author_id = ? AND enable = ?", authorID, true).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	visible := make([]models.Post, 0, len(posts))
	for i := range posts {
		if canViewPost(&posts[i], viewerID, viewerRole) {
			visible = append(visible, posts[i])
		}
	}

	c.JSON(http.StatusOK, visible)
}

// @Summary Get a single post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 403 {object} map[string]string "error: Subscription required"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Router /posts/{id} [get]
func GetPost(c *gin.Context) {
	var post models.Post
	if err := db.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		}
		return
	}

	viewerID := ""
	if userID, exists := c.Get("user_id"); exists {
		viewerID = userID.(string)
	}
	viewerRole := ""
	if role, exists := c.Get("role"); exists {
		viewerRole, _ = role.(string)
	}

	if !canViewPost(&post, viewerID, viewerRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "An active subscription is required to view this post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body models.PostUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.Post
// @Failure 403 {object} map[string]string "error: Not the author"
// @Router /posts/{id} [patch]
func UpdatePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the author of this post"})
		return
	}

	var input models.PostUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Content != "" {
		updates["content"] = input.Content
	}
	if input.IsPublic != nil {
		updates["is_public"] = *input.IsPublic
	}
	if input.Enable != nil {
		updates["enable"] = *input.Enable
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post"})
			return
		}
	}

	c.JSON(http.StatusOK, post)
}

// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post deleted"
// @Failure 403 {object} map[string]string "error: Not the author"
// @Router /posts/{id} [delete]
func DeletePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	role, _ := c.Get("role")
	if post.AuthorID != userID && role != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the author of this post"})
		return
	}

	if err := db.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post"})
		return
	}

	utils.LogSuccessWithUser(userID, "Post supprimé dans DeletePost")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
